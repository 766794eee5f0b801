package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mpetrov/skim/internal/document"
	"github.com/mpetrov/skim/internal/reader"
	"github.com/mpetrov/skim/internal/session"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type keyMap struct {
	Pause   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Rewind  key.Binding
	Skip    key.Binding
	Outline key.Binding
	Select  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Outline, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Faster, k.Slower},
		{k.Rewind, k.Skip, k.Outline},
		{k.Select, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
	Faster:  key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "faster (+25 WPM)")),
	Slower:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "slower (-25 WPM)")),
	Rewind:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "rewind")),
	Skip:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "skip ahead")),
	Outline: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outline")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump to section")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	sess     *session.Session
	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int
	quitting bool
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func newModel(sess *session.Session) model {
	return model{
		sess:     sess,
		keys:     keys,
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill("#508050"), progress.WithoutPercentage()),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	return tick(m.sess.Delay())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.sess.ToggleHelp()
			return m, nil
		}

		if m.sess.Mode == session.ModeOutline {
			return m.updateOutline(msg)
		}
		return m.updateReading(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.sess.Paused || m.sess.Mode != session.ModeReading {
			return m, nil
		}
		if m.sess.Advance() {
			return m, tick(m.sess.Delay())
		}
		// End of document: stay on the last word.
		m.sess.Paused = true
		return m, nil
	}

	return m, nil
}

func (m model) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.sess.TogglePause()
		if !m.sess.Paused {
			return m, tick(m.sess.Delay())
		}

	case key.Matches(msg, m.keys.Faster):
		m.sess.IncreaseWPM()

	case key.Matches(msg, m.keys.Slower):
		m.sess.DecreaseWPM()

	case key.Matches(msg, m.keys.Rewind):
		m.sess.Rewind()

	case key.Matches(msg, m.keys.Skip):
		m.sess.Skip()

	case key.Matches(msg, m.keys.Outline):
		m.sess.ToggleOutline()
	}
	return m, nil
}

func (m model) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Slower):
		m.sess.OutlineDown()

	case key.Matches(msg, m.keys.Faster):
		m.sess.OutlineUp()

	case key.Matches(msg, m.keys.Select):
		m.sess.JumpToSection()
		if !m.sess.Paused {
			return m, tick(m.sess.Delay())
		}

	case key.Matches(msg, m.keys.Outline), msg.String() == "esc":
		m.sess.ToggleOutline()
		if !m.sess.Paused {
			return m, tick(m.sess.Delay())
		}
	}
	return m, nil
}

func main() {
	wpm := flag.IntP("wpm", "w", 300, "Words per minute (100-800)")
	contextWidth := flag.Int("context-width", session.DefaultContextWidth, "Maximum width of context lines in characters")
	noHintChars := flag.Bool("no-hint-chars", false, "Disable hint character gutter")
	noStyling := flag.Bool("no-styling", false, "Disable bold/italic/code styling")
	exportMD := flag.Bool("export-md", false, "Export EPUB chapters to markdown files instead of reading")
	debug := flag.Bool("debug", false, "Write debug log to skim.log")
	showVersion := flag.BoolP("version", "v", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Skim - Terminal RSVP reader for markdown and EPUB\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  skim [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats: %s\n", strings.Join(reader.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skim notes.md               Read a markdown file at 300 WPM\n")
		fmt.Fprintf(os.Stderr, "  skim -w 500 book.epub       Read an EPUB at 500 WPM\n")
		fmt.Fprintf(os.Stderr, "  cat notes.md | skim         Read from stdin\n")
		fmt.Fprintf(os.Stderr, "  skim --export-md book.epub  Export chapters as markdown\n")
	}

	// SKIM_ARGS is prepended so CLI arguments win on conflicts.
	args := strings.Fields(os.Getenv("SKIM_ARGS"))
	args = append(args, os.Args[1:]...)
	if err := flag.CommandLine.Parse(args); err != nil {
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("skim %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *exportMD {
		if flag.NArg() == 0 || !strings.HasSuffix(strings.ToLower(flag.Arg(0)), ".epub") {
			fmt.Fprintln(os.Stderr, "Error: --export-md only works with EPUB files")
			os.Exit(1)
		}
		dir, count, err := reader.ExportChapters(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d chapters to ./%s/\n", count, dir)
		return
	}

	if *debug {
		f, err := tea.LogToFile("skim.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var source string

	if flag.NArg() > 0 {
		var err error
		source, err = reader.Load(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: No input provided. Provide a file or pipe text to stdin.")
			fmt.Fprintln(os.Stderr, "Try: skim -h")
			os.Exit(1)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
	}

	if strings.TrimSpace(source) == "" {
		fmt.Fprintln(os.Stderr, "Error: No text to read.")
		os.Exit(1)
	}

	tokens, sections, err := document.NewTokenizer().Tokenize([]byte(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(tokens) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No text to read.")
		os.Exit(1)
	}
	log.Printf("tokenized %d words in %d sections", len(tokens), len(sections))

	sess := session.New(document.BuildStream(tokens, *wpm), sections, *wpm)
	sess.ContextWidth = *contextWidth
	sess.HintChars = !*noHintChars
	sess.Styling = !*noStyling
	log.Printf("starting at %d wpm", sess.WPM)

	p := tea.NewProgram(newModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
