package document

import (
	"reflect"
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple whitespace",
			input: "one two three",
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "collapses whitespace runs",
			input: "one\t two \n three",
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "em dash splits",
			input: "Hello—world",
			want:  []string{"Hello", "world"},
		},
		{
			name:  "en dash splits",
			input: "1999–2004 range",
			want:  []string{"1999", "2004", "range"},
		},
		{
			name:  "short hyphenated stays whole",
			input: "co-op",
			want:  []string{"co-op"},
		},
		{
			name:  "long hyphenated splits keeping hyphens",
			input: "well-known",
			want:  []string{"well-", "known"},
		},
		{
			name:  "three portions",
			input: "mother-in-law",
			want:  []string{"mother-", "in-", "law"},
		},
		{
			name:  "mixed sentence",
			input: "a well-known co-op",
			want:  []string{"a", "well-", "known", "co-op"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only whitespace",
			input: "   \n\t ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitWords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitWords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitHyphenatedThresholdCountsRunes(t *testing.T) {
	// Four runes but more than four bytes; must still split.
	got := SplitWords("süße-brezel")
	want := []string{"süße-", "brezel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitWords(süße-brezel) = %v, want %v", got, want)
	}
}
