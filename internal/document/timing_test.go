package document

import "testing"

func TestGenerateHint(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		paraEnd  bool
		newBlock bool
		lastCell bool
		want     TimingHint
	}{
		{
			name: "plain short word",
			word: "cat",
			want: TimingHint{TableColumn: -1},
		},
		{
			name: "sentence punctuation",
			word: "done.",
			want: TimingHint{PunctuationModifier: 200, TableColumn: -1},
		},
		{
			name: "clause punctuation",
			word: "now;",
			want: TimingHint{PunctuationModifier: 150, TableColumn: -1},
		},
		{
			name: "clause punctuation on a long word",
			word: "however,", // 8 runes
			want: TimingHint{WordLengthModifier: 20, PunctuationModifier: 150, TableColumn: -1},
		},
		{
			name:    "paragraph end",
			word:    "end.",
			paraEnd: true,
			want:    TimingHint{PunctuationModifier: 200, StructureModifier: 300, TableColumn: -1},
		},
		{
			name:     "new block",
			word:     "First",
			newBlock: true,
			want:     TimingHint{StructureModifier: 150, NewBlock: true, TableColumn: -1},
		},
		{
			name:     "paragraph end wins over new block",
			word:     "end.",
			paraEnd:  true,
			newBlock: true,
			want:     TimingHint{PunctuationModifier: 200, StructureModifier: 300, NewBlock: true, TableColumn: -1},
		},
		{
			name:     "last table cell pauses like paragraph end",
			word:     "value",
			lastCell: true,
			want:     TimingHint{StructureModifier: 300, TableColumn: -1},
		},
		{
			name: "long word",
			word: "mississippi", // 11 runes
			want: TimingHint{WordLengthModifier: 55, TableColumn: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateHint(tt.word, tt.paraEnd, tt.newBlock, tt.lastCell, false)
			if got != tt.want {
				t.Errorf("GenerateHint(%q) = %+v, want %+v", tt.word, got, tt.want)
			}
		})
	}
}

func TestWordLengthModifier(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"a", 0},
		{"abcdef", 0},     // 6 runes, still free
		{"abcdefg", 10},   // 7
		{"abcdefghij", 40}, // 10
		{"abcdefghijkl", 70}, // 12
	}
	for _, tt := range tests {
		if got := wordLengthModifier(tt.word); got != tt.want {
			t.Errorf("wordLengthModifier(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestDurationMS(t *testing.T) {
	plain := &Token{Word: "cat", Hint: TimingHint{TableColumn: -1}}
	if got := DurationMS(plain, 300); got != 200 {
		t.Errorf("plain word at 300 WPM = %d, want 200", got)
	}
	if got := DurationMS(plain, 600); got != 100 {
		t.Errorf("plain word at 600 WPM = %d, want 100", got)
	}

	// Modifiers rescale with the base so relative pacing is constant.
	end := &Token{Word: "end.", Hint: TimingHint{PunctuationModifier: 200, StructureModifier: 300, TableColumn: -1}}
	if got := DurationMS(end, 300); got != 700 {
		t.Errorf("paragraph end at 300 WPM = %d, want 700", got)
	}
	if got := DurationMS(end, 600); got != 350 {
		t.Errorf("paragraph end at 600 WPM = %d, want 350", got)
	}
}

func TestDurationMSFloor(t *testing.T) {
	plain := &Token{Word: "a", Hint: TimingHint{TableColumn: -1}}
	if got := DurationMS(plain, 2000); got != 50 {
		t.Errorf("duration at extreme speed = %d, want floor 50", got)
	}
}

func TestDurationMSMonotonicInSpeed(t *testing.T) {
	tok := &Token{Word: "sentence.", Hint: GenerateHint("sentence.", true, false, false, false)}
	prev := int64(1 << 62)
	for wpm := 100; wpm <= 800; wpm += 25 {
		got := DurationMS(tok, wpm)
		if got > prev {
			t.Fatalf("duration increased from %d to %d at %d WPM", prev, got, wpm)
		}
		prev = got
	}
}

func TestBuildStream(t *testing.T) {
	tokens := []Token{
		{Word: "wonderful", Hint: TimingHint{TableColumn: -1}},
		{Word: "end.", Hint: TimingHint{PunctuationModifier: 200, StructureModifier: 300, TableColumn: -1}},
	}
	stream := BuildStream(tokens, 300)
	if len(stream) != 2 {
		t.Fatalf("stream length = %d, want 2", len(stream))
	}
	if stream[0].ORP != 2 {
		t.Errorf("ORP(wonderful) = %d, want 2", stream[0].ORP)
	}
	if stream[0].DurationMS != 200 {
		t.Errorf("duration(wonderful) = %d, want 200", stream[0].DurationMS)
	}
	if stream[1].DurationMS != 700 {
		t.Errorf("duration(end.) = %d, want 700", stream[1].DurationMS)
	}
}
