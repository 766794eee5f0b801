// Package session holds the navigation state for one reading session:
// cursor position, speed, pause flag, view mode and outline selection.
// The token stream and section list are read-only after construction.
package session

import (
	"time"

	"github.com/mpetrov/skim/internal/document"
)

// WPM bounds and step size.
const (
	MinWPM  = 100
	MaxWPM  = 800
	StepWPM = 25

	// DefaultContextWidth caps context line width so very wide
	// terminals do not reflow the whole window.
	DefaultContextWidth = 80

	skipTokens = 10
)

// Mode is the active view.
type Mode int

const (
	ModeReading Mode = iota
	ModeOutline
)

// Session is the mutable per-reading state. All mutations are cheap,
// synchronous and non-blocking.
type Session struct {
	Tokens   []document.TimedToken
	Sections []document.Section

	Position   int
	WPM        int
	Paused     bool
	Mode       Mode
	OutlineSel int
	ShowHelp   bool

	ContextWidth int
	HintChars    bool
	Styling      bool
}

// New creates a session over an immutable stream.
func New(tokens []document.TimedToken, sections []document.Section, wpm int) *Session {
	return &Session{
		Tokens:       tokens,
		Sections:     sections,
		WPM:          clampWPM(wpm),
		ContextWidth: DefaultContextWidth,
		HintChars:    true,
		Styling:      true,
	}
}

func clampWPM(wpm int) int {
	if wpm < MinWPM {
		return MinWPM
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return wpm
}

// Current returns the token under the cursor, or nil for an empty
// stream.
func (s *Session) Current() *document.TimedToken {
	if s.Position < 0 || s.Position >= len(s.Tokens) {
		return nil
	}
	return &s.Tokens[s.Position]
}

// Delay returns how long the current word stays on screen, computed at
// the current speed rather than the stream's build speed.
func (s *Session) Delay() time.Duration {
	tok := s.Current()
	if tok == nil {
		return 200 * time.Millisecond
	}
	ms := document.DurationMS(&tok.Token, s.WPM)
	return time.Duration(ms) * time.Millisecond
}

// Progress is the read fraction in [0, 1).
func (s *Session) Progress() float64 {
	if len(s.Tokens) == 0 {
		return 0
	}
	return float64(s.Position) / float64(len(s.Tokens))
}

// Advance moves one token forward. Returns false at the end.
func (s *Session) Advance() bool {
	if s.Position < len(s.Tokens)-1 {
		s.Position++
		return true
	}
	return false
}

// AtEnd reports whether the cursor sits on the last token.
func (s *Session) AtEnd() bool {
	return s.Position >= len(s.Tokens)-1
}

func (s *Session) TogglePause() { s.Paused = !s.Paused }
func (s *Session) ToggleHelp()  { s.ShowHelp = !s.ShowHelp }

func (s *Session) IncreaseWPM() { s.WPM = clampWPM(s.WPM + StepWPM) }
func (s *Session) DecreaseWPM() { s.WPM = clampWPM(s.WPM - StepWPM) }

// Rewind jumps back a fixed token count.
func (s *Session) Rewind() {
	s.Position -= skipTokens
	if s.Position < 0 {
		s.Position = 0
	}
}

// Skip jumps forward a fixed token count.
func (s *Session) Skip() {
	s.Position += skipTokens
	if last := len(s.Tokens) - 1; s.Position > last {
		s.Position = last
		if s.Position < 0 {
			s.Position = 0
		}
	}
}

// ToggleOutline switches between the reading and outline views.
func (s *Session) ToggleOutline() {
	if s.Mode == ModeReading {
		s.Mode = ModeOutline
	} else {
		s.Mode = ModeReading
	}
}

func (s *Session) OutlineUp() {
	if s.OutlineSel > 0 {
		s.OutlineSel--
	}
}

func (s *Session) OutlineDown() {
	if s.OutlineSel < len(s.Sections)-1 {
		s.OutlineSel++
	}
}

// JumpToSection moves the cursor to the selected section's first token
// and returns to the reading view.
func (s *Session) JumpToSection() {
	if s.OutlineSel >= 0 && s.OutlineSel < len(s.Sections) {
		s.Position = s.Sections[s.OutlineSel].TokenStart
		s.Mode = ModeReading
	}
}

// CurrentSectionTitle returns the title of the section containing the
// cursor, or the empty string before the first heading.
func (s *Session) CurrentSectionTitle() string {
	for i := len(s.Sections) - 1; i >= 0; i-- {
		if s.Position >= s.Sections[i].TokenStart {
			return s.Sections[i].Title
		}
	}
	return ""
}
