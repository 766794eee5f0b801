package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"

	"github.com/mpetrov/skim/internal/document"
	"github.com/mpetrov/skim/internal/layout"
	"github.com/mpetrov/skim/internal/session"
)

var (
	orpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F")).Bold(true)
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EEEEEE"))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF87"))
	guideStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F8787"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFAF"))
	statusDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF5F")).Bold(true)
	selectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EEEEEE")).Bold(true)
	helpBox      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F8787")).
			Padding(1, 2)
)

// gutterWidth is the fixed width of the hint character column.
const gutterWidth = 6

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.sess.ShowHelp {
		return m.helpView()
	}
	if m.sess.Mode == session.ModeOutline {
		return m.outlineView()
	}
	return m.readingView()
}

// readingView stacks the before-context, the RSVP line with its guides,
// the after-context, and the status bar. The RSVP word stays at a fixed
// row so the eye never has to move.
func (m model) readingView() string {
	contentHeight := m.height - 2
	if contentHeight < 5 {
		contentHeight = 5
	}
	beforeRows := (contentHeight - 3) * 2 / 5
	afterRows := contentHeight - 3 - beforeRows

	gutter := 0
	if m.sess.HintChars {
		gutter = gutterWidth
	}
	avail := m.width - gutter
	if avail < 10 {
		avail = 10
	}

	lines := layout.ComputeLines(m.sess.Tokens, m.sess.Position, avail, m.sess.ContextWidth)
	columns := layout.MeasureColumns(lines)
	cursorLine, _ := layout.FindCursorLine(lines, m.sess.Position)

	var before []string
	for i := cursorLine; i >= 0 && len(before) < beforeRows; i-- {
		before = append(before, m.contextRow(lines[i], cursorLine-i, layout.Before, columns, avail))
	}
	// Collected bottom-up; pad then reverse so the word row stays fixed.
	for len(before) < beforeRows {
		before = append(before, "")
	}
	for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
		before[i], before[j] = before[j], before[i]
	}

	var after []string
	for i := cursorLine; i < len(lines) && len(after) < afterRows; i++ {
		after = append(after, m.contextRow(lines[i], i-cursorLine, layout.After, columns, avail))
	}

	var sb strings.Builder
	for _, row := range before {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	sb.WriteString(m.rsvpBlock())
	for _, row := range after {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	for i := len(after); i < afterRows; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString(m.statusBar())
	return sb.String()
}

// contextRow renders one context line with its gutter hint.
func (m model) contextRow(line layout.Line, distance int, side layout.Side, columns map[int]int, avail int) string {
	if line.Blank {
		return ""
	}
	rendered := layout.RenderLine(line, layout.RenderOptions{
		Cursor:   m.sess.Position,
		Side:     side,
		Distance: distance,
		Width:    avail,
		Styling:  m.sess.Styling,
		Columns:  columns,
	})
	if !m.sess.HintChars {
		return rendered
	}
	return gutterFor(line) + rendered
}

// gutterFor formats a line's hint characters, parent block first.
func gutterFor(line layout.Line) string {
	if len(line.Words) == 0 {
		return strings.Repeat(" ", gutterWidth)
	}
	tok := line.Words[0].Token.Token
	hint := tok.Block.HintChars()
	if tok.Parent != nil {
		if p := tok.Parent.HintChars(); p != "" && p != hint {
			hint = p + hint
		}
	}
	if len(hint) > gutterWidth-1 {
		hint = hint[:gutterWidth-1]
	}
	pad := gutterWidth - len(hint)
	return gutterStyle.Render(hint) + strings.Repeat(" ", pad)
}

// rsvpBlock renders the three center rows: guide, word, guide. The ORP
// character is pinned to the terminal's center column and the guides
// carry a tick above and below it.
func (m model) rsvpBlock() string {
	tok := m.sess.Current()
	if tok == nil {
		return "\n\n\n"
	}

	center := m.width / 2
	runes := []rune(tok.Token.Word)
	orp := tok.ORP
	if orp >= len(runes) {
		orp = len(runes) - 1
	}
	if orp < 0 {
		orp = 0
	}

	beforePart := string(runes[:orp])
	orpPart := string(runes[orp : orp+1])
	afterPart := string(runes[orp+1:])

	leftPad := center - runewidth.StringWidth(beforePart)
	if leftPad < 0 {
		leftPad = 0
	}

	base := wordStyle
	if m.sess.Styling {
		switch tok.Token.Style.Kind {
		case document.StyleBold:
			base = base.Bold(true)
		case document.StyleItalic:
			base = base.Italic(true)
		case document.StyleBoldItalic:
			base = base.Bold(true).Italic(true)
		case document.StyleCode:
			base = codeStyle
		}
	}

	word := strings.Repeat(" ", leftPad) +
		base.Render(beforePart) +
		orpStyle.Render(orpPart) +
		base.Render(afterPart)

	return guideRow(center, m.width, '┬') + "\n" +
		word + "\n" +
		guideRow(center, m.width, '┴') + "\n"
}

// guideRow draws a horizontal rule with a tick at the ORP column, fading
// out with dashed segments at both ends.
func guideRow(center, width int, tick rune) string {
	const span = 20
	start := center - span
	if start < 0 {
		start = 0
	}
	end := center + span
	if end >= width {
		end = width - 1
	}
	if end <= start {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", start))
	for i := start; i <= end; i++ {
		switch {
		case i == center:
			sb.WriteRune(tick)
		case i-start < 2 || end-i < 2:
			sb.WriteRune('┄')
		case i-start < 4 || end-i < 4:
			sb.WriteRune('╌')
		default:
			sb.WriteRune('─')
		}
	}
	return guideStyle.Render(sb.String())
}

// statusBar is two rows: section title with read percentage, then the
// progress bar with speed, time remaining and pause state.
func (m model) statusBar() string {
	title := m.sess.CurrentSectionTitle()
	if title == "" {
		title = "—"
	}
	title = runewidth.Truncate(title, m.width-12, "…")

	pct := fmt.Sprintf("%3.0f%%", m.sess.Progress()*100)
	left := statusDim.Render("> ") + sectionStyle.Render(title)
	gap := m.width - ansi.PrintableRuneWidth(left) - len(pct) - 1
	if gap < 1 {
		gap = 1
	}
	line1 := left + strings.Repeat(" ", gap) + statusDim.Render(pct)

	state := fmt.Sprintf(" %d wpm · %s", m.sess.WPM, remainingTime(m.sess))
	if m.sess.Paused {
		state += " · " + pausedStyle.Render("PAUSED")
	}

	prog := m.progress
	prog.Width = m.width - ansi.PrintableRuneWidth(state) - 2
	if prog.Width < 10 {
		prog.Width = 10
	}
	line2 := prog.ViewAs(m.sess.Progress()) + statusDim.Render(state)

	return line1 + "\n" + line2
}

// remainingTime estimates time left at the current speed from the word
// count alone, which tracks the timed durations closely enough for a
// status line.
func remainingTime(s *session.Session) string {
	remaining := len(s.Tokens) - s.Position
	if remaining < 0 {
		remaining = 0
	}
	d := time.Duration(float64(remaining) / float64(s.WPM) * float64(time.Minute))
	d = d.Round(time.Second)

	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm left", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm left", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds left", int(d.Seconds()))
}

// outlineView lists document sections with the selection pinned to the
// vertical center, dimming entries by distance like context lines.
func (m model) outlineView() string {
	sections := m.sess.Sections
	contentHeight := m.height - 2
	if contentHeight < 5 {
		contentHeight = 5
	}

	if len(sections) == 0 {
		msg := statusDim.Render("No sections in this document. Press o to go back.")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg) +
			"\n" + m.statusBar()
	}

	sel := m.sess.OutlineSel
	centerRow := contentHeight / 2

	rows := make([]string, contentHeight)
	for row := 0; row < contentHeight; row++ {
		idx := sel + row - centerRow
		if idx < 0 || idx >= len(sections) {
			continue
		}
		sec := sections[idx]

		indent := strings.Repeat("  ", sec.Level-1)
		label := runewidth.Truncate(sec.Title, m.width-10, "…")

		if idx == sel {
			rows[row] = "  " + selectStyle.Render("▶ "+indent+label)
		} else {
			distance := idx - sel
			if distance < 0 {
				distance = -distance
			}
			rows[row] = "    " + layout.DistanceStyle(distance).Render(indent+label)
		}
	}

	return strings.Join(rows, "\n") + "\n" + m.statusBar()
}

// helpView shows the full key map in a centered box.
func (m model) helpView() string {
	content := "Skim\n\n" + m.help.FullHelpView(m.keys.FullHelp())
	box := helpBox.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
