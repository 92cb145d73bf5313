package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/iw2rmb/textkit"
	"github.com/iw2rmb/textkit/editor"
	"github.com/iw2rmb/textkit/highlight"
	"github.com/iw2rmb/textkit/layout"
)

const welcome = `Hello from textkit.

Type to edit. Arrows move, shift+arrows select.
Ctrl+K starts composing marked text; enter commits, esc cancels.
Drag with the right mouse button to move the caret.
Ctrl+C/X/V use the system clipboard. Ctrl+Q quits.`

type options struct {
	path      string
	lexer     string
	style     string
	wrap      string
	lineNums  bool
	verbosity int
	logPath   string
}

type model struct {
	editor editor.Model
	title  string
	status lipgloss.Style
}

func newModel(opts options, text string) model {
	cfg := editor.Config{
		Text:         text,
		ShowLineNums: opts.lineNums,
		Style:        editor.DefaultStyle(),
		WrapMode:     parseWrap(opts.wrap),
		Clipboard:    editor.SystemClipboard{},
	}
	if opts.lexer != "" || opts.path != "" {
		cfg.Highlight = &highlight.Options{
			Lexer:    opts.lexer,
			Filename: filepath.Base(opts.path),
			Style:    opts.style,
		}
	}

	name := opts.path
	if name == "" {
		name = "[scratch]"
	}
	return model{
		editor: editor.New(cfg),
		title:  fmt.Sprintf("textkit %s  %s", textkit.VersionTag(), name),
		status: lipgloss.NewStyle().Reverse(true),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, maxInt(msg.Height-1, 0))
		m.status = m.status.Width(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	info := []string{m.title}
	if r, ok := m.editor.TextView().SelectedRange(); ok {
		if r.IsEmpty() {
			info = append(info, fmt.Sprintf("@%d", r.Start()))
		} else {
			info = append(info, fmt.Sprintf("[%d, %d)", r.Start(), r.End()))
		}
	}
	if m.editor.Composing() {
		info = append(info, "COMPOSE")
	}
	info = append(info, "wrap:"+m.editor.WrapMode().String())
	return m.status.Render(strings.Join(info, "  ")) + "\n" + m.editor.View()
}

func parseWrap(s string) layout.WrapMode {
	switch strings.ToLower(s) {
	case "word":
		return layout.WrapWord
	case "grapheme":
		return layout.WrapGrapheme
	default:
		return layout.WrapNone
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func main() {
	var opts options
	flag.StringVar(&opts.lexer, "lexer", "", "chroma lexer name (defaults to detection from the file name)")
	flag.StringVar(&opts.style, "style", "", "chroma style name")
	flag.StringVar(&opts.wrap, "wrap", "word", "wrap mode: none, word or grapheme")
	flag.BoolVar(&opts.lineNums, "line-numbers", true, "show line numbers")
	flag.IntVar(&opts.verbosity, "v", 0, "log verbosity")
	flag.StringVar(&opts.logPath, "log", "textkit-demo.log", "log file")
	flag.Parse()
	opts.path = flag.Arg(0)

	// The terminal belongs to the UI, so logs always go to a file.
	commonlog.Configure(opts.verbosity, &opts.logPath)
	log := commonlog.GetLogger("textkit.demo")

	out := termenv.NewOutput(os.Stdout)
	lipgloss.SetColorProfile(out.ColorProfile())
	if opts.style == "" && !out.HasDarkBackground() {
		opts.style = "github"
	}

	text := welcome
	if opts.path != "" {
		b, err := os.ReadFile(opts.path)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "read %s: %s\n", opts.path, err)
			os.Exit(1)
		}
		text = string(b)
	}
	log.Infof("starting: path=%q lexer=%q style=%q wrap=%s", opts.path, opts.lexer, opts.style, opts.wrap)

	p := tea.NewProgram(newModel(opts, text), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
