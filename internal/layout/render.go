package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpetrov/skim/internal/document"
)

// Side selects which half of the context a line is rendered for. The
// cursor's own line can appear in both: the before viewport shows only
// tokens strictly before the cursor, the after viewport only tokens
// strictly after it. Hidden words render as blank placeholders of the
// same width so alignment never shifts.
type Side int

const (
	Before Side = iota
	After
)

// Context lines dim with distance from the cursor's line, quantized
// into a few brightness steps.
var distanceStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8C8")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#969696")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#505050")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C")),
}

// DistanceStyle returns the dimming style for a line the given number
// of lines away from the cursor's line.
func DistanceStyle(distance int) lipgloss.Style {
	if distance >= len(distanceStyles) {
		distance = len(distanceStyles) - 1
	}
	if distance < 0 {
		distance = 0
	}
	return distanceStyles[distance]
}

// RenderOptions controls one line's rendering.
type RenderOptions struct {
	Cursor   int
	Side     Side
	Distance int
	Width    int
	Styling  bool
	Columns  map[int]int
}

// LineWidth is the display width of a line's content: block prefix,
// words with trailing spaces, cell padding and separators, and the
// trailing bar on table rows.
func LineWidth(line Line, columns map[int]int) int {
	if line.Blank || len(line.Words) == 0 {
		return 0
	}

	width := utf8.RuneCountInString(line.Block().Prefix())
	runs := splitCells(line)
	inTable := false

	for i, run := range runs {
		if run.column >= 0 {
			if i > 0 && inTable {
				width += len(cellSeparator)
			}
			cw := run.width
			if padded, ok := columns[run.column]; ok && padded > cw {
				cw = padded
			}
			width += cw
			inTable = true
		} else {
			width += run.width
			inTable = false
		}
	}

	if inTable {
		width++ // trailing |
	}
	return width
}

// Padding computes a line's left padding: centered when the content is
// narrow relative to the available width and the block is eligible,
// otherwise left-aligned at the minimum.
func Padding(contentWidth, availableWidth int, center bool) int {
	if availableWidth == 0 {
		return MinPadding
	}
	if center {
		ratio := float64(contentWidth) / float64(availableWidth)
		if ratio < CenterThreshold {
			pad := (availableWidth - contentWidth) / 2
			if pad < MinPadding {
				pad = MinPadding
			}
			return pad
		}
	}
	return MinPadding
}

// RenderLine renders one context line as a styled string. Words on the
// hidden side of the cursor become blank runs of the same width; table
// cells are padded to their measured column widths.
func RenderLine(line Line, opts RenderOptions) string {
	if line.Blank || len(line.Words) == 0 {
		return ""
	}

	base := DistanceStyle(opts.Distance)
	block := line.Block()

	contentWidth := LineWidth(line, opts.Columns)
	pad := Padding(contentWidth, opts.Width, block.CenterEligible())

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", pad))
	if prefix := block.Prefix(); prefix != "" {
		sb.WriteString(base.Render(prefix))
	}

	runs := splitCells(line)
	inTable := false

	for i, run := range runs {
		if run.column >= 0 && inTable && i > 0 {
			sb.WriteString(base.Render(cellSeparator))
		}

		for _, w := range run.words {
			sb.WriteString(renderWord(w, base, opts))
		}

		if run.column >= 0 {
			if padded, ok := opts.Columns[run.column]; ok && padded > run.width {
				sb.WriteString(strings.Repeat(" ", padded-run.width))
			}
			inTable = true
		} else {
			inTable = false
		}
	}

	if inTable {
		sb.WriteString(base.Render("|"))
	}

	return sb.String()
}

func renderWord(w Word, base lipgloss.Style, opts RenderOptions) string {
	tok := w.Token.Token

	visible := false
	switch opts.Side {
	case Before:
		visible = w.Index < opts.Cursor
	case After:
		visible = w.Index > opts.Cursor
	}

	if !visible {
		return strings.Repeat(" ", utf8.RuneCountInString(tok.Word)+1)
	}

	style := base
	if opts.Styling {
		switch tok.Style.Kind {
		case document.StyleBold:
			style = style.Bold(true)
		case document.StyleItalic:
			style = style.Italic(true)
		case document.StyleBoldItalic:
			style = style.Bold(true).Italic(true)
		}
	}
	return style.Render(tok.Word) + " "
}
