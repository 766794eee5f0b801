// Package layout derives the visual context lines shown around the
// RSVP word. Lines are recomputed per frame from a bounded window of
// the token stream, never the whole document, and the window is
// anchored so line breaks stay stable as the cursor advances.
package layout

import (
	"unicode/utf8"

	"github.com/mpetrov/skim/internal/document"
)

const (
	// MinPadding is the minimum left padding for context lines.
	MinPadding = 2

	// CenterThreshold centers a line when its content uses less than
	// this fraction of the available width.
	CenterThreshold = 0.6

	// windowBudget bounds how many tokens either side of the cursor are
	// considered per frame.
	windowBudget = 600

	// Separator rendered between cells of a table row.
	cellSeparator = " | "
)

// Word is one positioned token of a line: the token plus its global
// index in the stream.
type Word struct {
	Index int
	Token *document.TimedToken
}

// Line is an ordered group of words, or a blank separator inserted
// between structural blocks. Lines are transient: rebuilt each frame,
// never persisted.
type Line struct {
	Words []Word
	Blank bool
}

// Block returns the structural block of the line's first word.
func (l Line) Block() document.Block {
	if len(l.Words) == 0 {
		return document.Block{}
	}
	return l.Words[0].Token.Token.Block
}

// ComputeLines packs a cursor-centered window of the stream into visual
// lines. A new line starts when the structural block changes (with
// same-row table cells kept together), when entering or leaving a
// table, when a list item boundary is crossed, or when the next word
// would exceed the width limit. Structural transitions (not width
// overflow) also insert one blank separator line, except between table
// rows and between sibling list items.
func ComputeLines(tokens []document.TimedToken, cursor, width, maxLineChars int) []Line {
	if len(tokens) == 0 {
		return nil
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(tokens) {
		cursor = len(tokens) - 1
	}

	start, end := window(tokens, cursor)

	maxChars := width - (MinPadding + 4)
	if maxLineChars < maxChars {
		maxChars = maxLineChars
	}
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []Line
	var current []Word
	currentWidth := 0

	for idx := start; idx < end; idx++ {
		tok := &tokens[idx]

		lineBreak, separator := breaksBefore(tokens, idx)
		if idx == start {
			lineBreak, separator = false, false
		}

		wordWidth := utf8.RuneCountInString(tok.Token.Word) + 1
		overflow := currentWidth+wordWidth > maxChars

		if (lineBreak || overflow) && len(current) > 0 {
			lines = append(lines, Line{Words: current})
			current = nil
			currentWidth = 0

			if separator {
				lines = append(lines, Line{Blank: true})
			}
		}

		current = append(current, Word{Index: idx, Token: tok})
		currentWidth += wordWidth
	}

	if len(current) > 0 {
		lines = append(lines, Line{Words: current})
	}

	return lines
}

// window bounds the token range considered for one frame. The start is
// pulled back to the nearest structural boundary so greedy packing
// reproduces the same line breaks a whole-document pass would, keeping
// word positions stable across frames without scanning from index 0.
func window(tokens []document.TimedToken, cursor int) (start, end int) {
	start = cursor - windowBudget
	if start < 0 {
		start = 0
	}
	for start > 0 && cursor-start < 2*windowBudget {
		if lineBreak, _ := breaksBefore(tokens, start); lineBreak {
			break
		}
		start--
	}

	end = cursor + windowBudget
	if end > len(tokens) {
		end = len(tokens)
	}
	return start, end
}

// breaksBefore reports whether a new line must start at tokens[idx] and
// whether a blank separator precedes it. Adjacent blocks of the same
// kind carry equal Block values, so the NewBlock flag is the boundary
// signal. Table rows and sibling list items break without a separator;
// everything else separates.
func breaksBefore(tokens []document.TimedToken, idx int) (lineBreak, separator bool) {
	if idx <= 0 {
		return false, false
	}
	prev := &tokens[idx-1].Token
	cur := &tokens[idx].Token

	inTable := cur.Block.InTable()
	wasInTable := prev.Block.InTable()

	if inTable && wasInTable {
		return cur.Block.Row != prev.Block.Row, false
	}

	lineBreak = cur.Hint.NewBlock || cur.Block != prev.Block || wasInTable != inTable
	siblingItems := cur.Block.Kind == document.BlockListItem && prev.Block.Kind == document.BlockListItem
	return lineBreak, lineBreak && !siblingItems
}

// FindCursorLine locates the line and word index holding the cursor.
// Falls back to (0, 0) when the cursor is outside the window.
func FindCursorLine(lines []Line, cursor int) (lineIdx, wordIdx int) {
	for i, line := range lines {
		for j, w := range line.Words {
			if w.Index == cursor {
				return i, j
			}
		}
	}
	return 0, 0
}
