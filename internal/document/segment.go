package document

import (
	"strings"
	"unicode/utf8"
)

// Portions of a hyphenated run longer than this many runes force a split.
const hyphenSplitThreshold = 3

func isDash(r rune) bool { return r == '—' || r == '–' }

// SplitWords splits a text run into display words. Whitespace runs
// delimit words, em-dashes and en-dashes are hard word boundaries, and
// hyphenated runs are split per splitHyphenated. Empty results are
// dropped. Inline-code runs must bypass this function; the tokenizer
// emits them verbatim.
func SplitWords(text string) []string {
	var words []string
	for _, field := range strings.Fields(text) {
		for _, part := range strings.FieldsFunc(field, isDash) {
			if strings.Contains(part, "-") {
				for _, w := range splitHyphenated(part) {
					if w != "" {
						words = append(words, w)
					}
				}
				continue
			}
			words = append(words, part)
		}
	}
	return words
}

// splitHyphenated splits a hyphen-joined run when any portion exceeds
// the threshold, keeping the hyphen on the tail of each non-final
// portion: "well-known" -> ["well-", "known"], "mother-in-law" ->
// ["mother-", "in-", "law"]. Runs whose portions are all short stay
// whole: "co-op" -> ["co-op"]. Thresholds count runes, not bytes.
func splitHyphenated(word string) []string {
	portions := strings.Split(word, "-")
	if len(portions) < 2 {
		return []string{word}
	}

	long := false
	for _, p := range portions {
		if utf8.RuneCountInString(p) > hyphenSplitThreshold {
			long = true
			break
		}
	}
	if !long {
		return []string{word}
	}

	out := make([]string, 0, len(portions))
	for i, p := range portions {
		if i < len(portions)-1 {
			p += "-"
		}
		out = append(out, p)
	}
	return out
}
