package document

import "unicode"

// ORPPosition returns the Optimal Recognition Point for a word: the
// 0-based rune index of the character to highlight. The eye fixates
// about a third into the word, so the offset grows with the count of
// alphabetic runes (1-3: 0, 4-6: 1, 7-9: 2, 10+: 3). Leading
// non-alphabetic runes (quotes, brackets, dashes) are skipped when
// measuring but included in the reported index so the highlight lands
// on a letter.
func ORPPosition(word string) int {
	leading := 0
	alpha := 0
	total := 0
	counting := true
	for _, r := range word {
		total++
		if unicode.IsLetter(r) {
			counting = false
			alpha++
			continue
		}
		if counting {
			leading++
		}
	}

	var offset int
	switch {
	case alpha <= 3:
		offset = 0
	case alpha <= 6:
		offset = 1
	case alpha <= 9:
		offset = 2
	default:
		offset = 3
	}

	// Fully non-alphabetic words ("...", "123") would index past the
	// end; clamp so the position is always a valid rune index.
	pos := leading + offset
	if pos >= total {
		pos = total - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
