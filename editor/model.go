package editor

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/highlight"
	"github.com/iw2rmb/textkit/layout"
	"github.com/iw2rmb/textkit/textview"
)

var log = commonlog.GetLogger("textkit.editor")

// Model is a Bubble Tea component that edits a document through a
// textview.View.
//
// Only the fragments the viewport controller materializes are rendered;
// everything else about the document stays in the layout engine.
type Model struct {
	cfg Config

	storage *buffer.Storage
	engine  *layout.Engine
	view    *textview.View
	vc      *textview.ViewportController
	host    *terminalHost
	fc      *textview.FloatingCursor
	hl      *highlight.Highlighter
	styles  *styleCache

	// anchor is where a keyboard or mouse selection started; the other end
	// of the selection is the head.
	sel *selectionEnds

	focused   bool
	composing bool

	mouseDragging bool
	floating      bool
	xOffset       int
	gutterWidth   int

	viewport viewport.Model

	last editState
}

type selectionEnds struct {
	anchor, head buffer.Position
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	m := Model{
		cfg:      cfg,
		storage:  buffer.New(cfg.Text),
		host:     &terminalHost{},
		styles:   newStyleCache(cfg.Style.Text),
		sel:      &selectionEnds{},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.engine = layout.New(m.storage, layout.Options{TabWidth: cfg.TabWidth, WrapMode: cfg.WrapMode})
	tvCfg := textview.Config{
		Overscan:         cfg.Overscan,
		OverscrollBottom: -1,
		CaretSize:        geom.Size{W: 1, H: 1},
		Clipboard:        cfg.Clipboard,
	}
	m.view = textview.NewView(m.storage, m.engine, tvCfg)
	m.vc = textview.NewViewportController(m.engine, m.host, func(f *layout.Fragment) textview.RenderingSurface {
		return newFragmentSurface(f, m.storage, m.styles)
	}, tvCfg)
	m.fc = textview.NewFloatingCursor(m.view, cfg.Now)
	if cfg.Highlight != nil {
		m.hl = highlight.New(*cfg.Highlight)
		m.applyHighlight()
	}

	m.last = m.currentEditState()
	m.relayout()
	m.rebuildContent()
	return m
}

// Storage returns the document storage. Hosts that edit it directly should
// send any message afterwards so the editor resynchronizes.
func (m Model) Storage() *buffer.Storage { return m.storage }

// TextView returns the text-input surface the editor drives.
func (m Model) TextView() *textview.View { return m.view }

// ViewportController returns the controller that materializes fragments.
func (m Model) ViewportController() *textview.ViewportController { return m.vc }

func (m Model) Text() string { return m.storage.String() }

// Composing reports whether compose mode is on.
func (m Model) Composing() bool { return m.composing }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.relayout()
	m.followCaret()
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.followCaret()
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.fc.Cancel()
		m.floating = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	// Only user input scrolls to the caret; host edits keep the scroll
	// position.
	follow := false
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
		follow = true
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
		follow = true
	case floatingTickMsg:
		m, cmd = m.updateFloatingTick()
	}
	m.sync(follow)
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// sync brings derived state up to date after an update: syntax attributes,
// layout, scroll position and the OnChange callback.
func (m *Model) sync(follow bool) {
	cur := m.currentEditState()
	textChanged := cur.version != m.last.version
	if textChanged && m.hl != nil {
		m.applyHighlight()
		cur.version = m.storage.Version()
	}
	m.syncSelectionEnds()

	m.relayout()
	if follow && (textChanged || cur.sel != m.last.sel || cur.selOK != m.last.selOK) {
		m.followCaret()
	}
	m.rebuildContent()

	if cur != m.last {
		m.last = cur
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(m.buildChangeEvent())
		}
	}
}

func (m *Model) applyHighlight() {
	if err := m.hl.Apply(m.storage); err != nil {
		log.Warningf("highlight: %s", err)
	}
}

// syncSelectionEnds keeps anchor and head in step with selections made
// through the text view (edits, actions, hosts).
func (m *Model) syncSelectionEnds() {
	r, ok := m.view.SelectedRange()
	if !ok {
		return
	}
	if buffer.NewRange(m.sel.anchor, m.sel.head) == r {
		return
	}
	m.sel.anchor, m.sel.head = r.Start(), r.End()
}

// relayout sizes the host and runs a viewport pass.
func (m *Model) relayout() {
	m.gutterWidth = 0
	if m.cfg.ShowLineNums {
		m.gutterWidth = gutterDigits(m.paragraphCount()) + 1
	}
	m.host.width = maxInt(m.viewport.Width-m.gutterWidth, 0)
	m.host.height = maxInt(m.viewport.Height-m.viewport.Style.GetVerticalFrameSize(), 0)
	m.vc.Layout()
	if m.host.offsetY > m.host.maxOffset() {
		m.host.offsetY = m.host.maxOffset()
		m.vc.Layout()
	}
}

func (m *Model) paragraphCount() int {
	idx, ok := m.engine.ParagraphIndex(m.view.EndOfDocument())
	if !ok {
		return 1
	}
	return idx + 1
}

// followCaret scrolls the head of the selection into view.
func (m *Model) followCaret() {
	if m.host.height <= 0 || m.host.width <= 0 {
		return
	}
	r := m.view.CaretRect(m.sel.head)
	if m.host.reveal(r) {
		m.vc.Layout()
	}
	if m.cfg.WrapMode == layout.WrapNone {
		x := int(r.MinX())
		switch {
		case x < m.xOffset:
			m.xOffset = x
		case x >= m.xOffset+m.host.width:
			m.xOffset = x - m.host.width + 1
		}
	} else {
		m.xOffset = 0
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
	m.viewport.SetYOffset(0)
}

// SetWrapMode changes how long paragraphs are displayed. Fragments keep their
// identity; only their lines are rebuilt.
func (m Model) SetWrapMode(mode layout.WrapMode) Model {
	if mode == m.cfg.WrapMode {
		return m
	}
	m.cfg.WrapMode = mode
	opts := m.engine.Options()
	opts.WrapMode = mode
	m.engine.SetOptions(opts)
	m.xOffset = 0
	m.relayout()
	m.followCaret()
	m.rebuildContent()
	return m
}

func (m Model) WrapMode() layout.WrapMode { return m.cfg.WrapMode }
