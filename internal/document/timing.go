package document

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Timing constants, in milliseconds at the calibration speed of 300 WPM
// (200ms base). Modifiers are rescaled with the base when the session
// runs at a different speed, so the relative slowdown at punctuation and
// structure boundaries stays constant.
const (
	calibrationBaseMS = 200.0

	sentencePunctMS = 200
	clausePunctMS   = 150
	paragraphEndMS  = 300
	newBlockMS      = 150

	minDurationMS = 50
)

// GenerateHint derives the timing modifiers for a word. paragraphEnd is
// true for the last word of a text run ending in sentence punctuation,
// newBlock for the first word emitted after entering a structural block,
// lastTableCell when the word sits in the final cell of a table row, and
// cellStart for the first word of a table cell. Paragraph-end and
// row-end take priority over new-block. TableColumn starts out -1; the
// tokenizer fills it in for table cells.
func GenerateHint(word string, paragraphEnd, newBlock, lastTableCell, cellStart bool) TimingHint {
	hint := TimingHint{
		WordLengthModifier: wordLengthModifier(word),
		NewBlock:           newBlock,
		IsCellStart:        cellStart,
		TableColumn:        -1,
	}

	if len(word) > 0 {
		last, _ := utf8.DecodeLastRuneInString(word)
		switch {
		case strings.ContainsRune(".!?", last):
			hint.PunctuationModifier = sentencePunctMS
		case strings.ContainsRune(",:;", last):
			hint.PunctuationModifier = clausePunctMS
		}
	}

	switch {
	case paragraphEnd || lastTableCell:
		hint.StructureModifier = paragraphEndMS
	case newBlock:
		hint.StructureModifier = newBlockMS
	}

	return hint
}

// wordLengthModifier is 0 through 6 runes, then grows 10ms per rune up
// to 10 and 15ms per rune past that. Monotonic non-decreasing in length.
func wordLengthModifier(word string) int {
	n := utf8.RuneCountInString(word)
	switch {
	case n <= 6:
		return 0
	case n <= 10:
		return (n - 6) * 10
	default:
		return 40 + (n-10)*15
	}
}

// DurationMS returns the display duration in milliseconds for a token
// at the given speed: base 60000/wpm plus the hint modifiers scaled to
// the current base, rounded, and floored at minDurationMS.
func DurationMS(t *Token, wpm int) int64 {
	if wpm <= 0 {
		wpm = 300
	}
	base := 60000.0 / float64(wpm)
	scale := base / calibrationBaseMS
	sum := float64(t.Hint.WordLengthModifier + t.Hint.PunctuationModifier + t.Hint.StructureModifier)

	ms := int64(math.Round(base + sum*scale))
	if ms < minDurationMS {
		ms = minDurationMS
	}
	return ms
}
