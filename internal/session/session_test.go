package session

import (
	"testing"
	"time"

	"github.com/mpetrov/skim/internal/document"
)

func testStream(t *testing.T, src string) ([]document.TimedToken, []document.Section) {
	t.Helper()
	tokens, sections, err := document.NewTokenizer().Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return document.BuildStream(tokens, 300), sections
}

func TestNewClampsWPM(t *testing.T) {
	tokens, sections := testStream(t, "hello world")

	if s := New(tokens, sections, 50); s.WPM != MinWPM {
		t.Errorf("WPM = %d, want clamped to %d", s.WPM, MinWPM)
	}
	if s := New(tokens, sections, 2000); s.WPM != MaxWPM {
		t.Errorf("WPM = %d, want clamped to %d", s.WPM, MaxWPM)
	}
	if s := New(tokens, sections, 300); s.WPM != 300 {
		t.Errorf("WPM = %d, want 300", s.WPM)
	}
}

func TestSpeedSteps(t *testing.T) {
	tokens, sections := testStream(t, "hello world")
	s := New(tokens, sections, 300)

	s.IncreaseWPM()
	if s.WPM != 325 {
		t.Errorf("WPM after increase = %d, want 325", s.WPM)
	}
	s.DecreaseWPM()
	s.DecreaseWPM()
	if s.WPM != 275 {
		t.Errorf("WPM after decreases = %d, want 275", s.WPM)
	}

	s.WPM = MaxWPM
	s.IncreaseWPM()
	if s.WPM != MaxWPM {
		t.Errorf("WPM exceeded maximum: %d", s.WPM)
	}
	s.WPM = MinWPM
	s.DecreaseWPM()
	if s.WPM != MinWPM {
		t.Errorf("WPM fell below minimum: %d", s.WPM)
	}
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	tokens, sections := testStream(t, "one two three")
	s := New(tokens, sections, 300)

	if !s.Advance() || !s.Advance() {
		t.Fatal("Advance returned false before the end")
	}
	if !s.AtEnd() {
		t.Error("AtEnd false on last token")
	}
	if s.Advance() {
		t.Error("Advance moved past the last token")
	}
	if s.Position != 2 {
		t.Errorf("Position = %d, want 2", s.Position)
	}
}

func TestRewindAndSkipClamp(t *testing.T) {
	tokens, sections := testStream(t, "a b c d e")
	s := New(tokens, sections, 300)

	s.Rewind()
	if s.Position != 0 {
		t.Errorf("Rewind at start moved to %d", s.Position)
	}
	s.Skip()
	if s.Position != len(tokens)-1 {
		t.Errorf("Skip past end = %d, want %d", s.Position, len(tokens)-1)
	}
}

func TestDelayTracksCurrentSpeed(t *testing.T) {
	tokens, sections := testStream(t, "word")
	s := New(tokens, sections, 300)

	at300 := s.Delay()
	s.WPM = 600
	at600 := s.Delay()
	if at600 >= at300 {
		t.Errorf("delay at 600 WPM (%v) not shorter than at 300 (%v)", at600, at300)
	}
	if at300 != 350*time.Millisecond {
		// "word" is the stream's only token: new block, no punctuation.
		t.Errorf("delay at 300 WPM = %v, want 350ms", at300)
	}
}

func TestDelayEmptyStream(t *testing.T) {
	s := New(nil, nil, 300)
	if s.Delay() != 200*time.Millisecond {
		t.Errorf("empty stream delay = %v, want 200ms", s.Delay())
	}
	if s.Current() != nil {
		t.Error("Current on empty stream not nil")
	}
}

func TestOutlineNavigation(t *testing.T) {
	tokens, sections := testStream(t, "# A\n\nsome words\n\n# B\n\nmore words\n\n# C\n\nlast")
	s := New(tokens, sections, 300)

	s.ToggleOutline()
	if s.Mode != ModeOutline {
		t.Fatal("mode not outline after toggle")
	}

	s.OutlineUp()
	if s.OutlineSel != 0 {
		t.Errorf("OutlineUp at top moved to %d", s.OutlineSel)
	}
	s.OutlineDown()
	s.OutlineDown()
	s.OutlineDown()
	if s.OutlineSel != 2 {
		t.Errorf("OutlineDown past end = %d, want 2", s.OutlineSel)
	}

	s.JumpToSection()
	if s.Mode != ModeReading {
		t.Error("jump did not return to reading mode")
	}
	if s.Position != sections[2].TokenStart {
		t.Errorf("Position = %d, want %d", s.Position, sections[2].TokenStart)
	}
}

func TestCurrentSectionTitle(t *testing.T) {
	tokens, sections := testStream(t, "intro words\n\n# First\n\nbody\n\n# Second\n\ntail")
	s := New(tokens, sections, 300)

	if got := s.CurrentSectionTitle(); got != "" {
		t.Errorf("title before first heading = %q, want empty", got)
	}

	s.Position = sections[0].TokenStart
	if got := s.CurrentSectionTitle(); got != "First" {
		t.Errorf("title = %q, want First", got)
	}

	s.Position = len(tokens) - 1
	if got := s.CurrentSectionTitle(); got != "Second" {
		t.Errorf("title = %q, want Second", got)
	}
}

func TestProgress(t *testing.T) {
	tokens, sections := testStream(t, "a b c d")
	s := New(tokens, sections, 300)

	if s.Progress() != 0 {
		t.Errorf("initial progress = %f", s.Progress())
	}
	s.Position = 2
	if s.Progress() != 0.5 {
		t.Errorf("midway progress = %f, want 0.5", s.Progress())
	}

	empty := New(nil, nil, 300)
	if empty.Progress() != 0 {
		t.Errorf("empty progress = %f", empty.Progress())
	}
}
