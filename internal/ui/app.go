package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/config"
	"github.com/bbqstudio/merchterm/internal/prefs"
	"github.com/bbqstudio/merchterm/internal/scramble"
	"github.com/bbqstudio/merchterm/internal/state"
	"github.com/bbqstudio/merchterm/internal/storefront"
)

// Page is a top-level section of the storefront.
type Page int

const (
	PageHome Page = iota
	PageAbout
	PageFeatures
	PageStore
)

// focusArea says which part of the screen receives navigation keys.
type focusArea int

const (
	focusContent focusArea = iota
	focusNav
	focusFooter
)

// Preferences is the durable store the UI writes favorites and the theme to.
type Preferences interface {
	prefs.Store
	SetTheme(name string) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Prefs     Preferences
	Logger    *zap.Logger
	ThemeName string
	Sort      storefront.SortOrder
	Scramble  config.Scramble
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	store         *state.Store
	prefs         Preferences
	logger        *zap.Logger
	pollTick      time.Duration
	frameInterval time.Duration
	stagger       time.Duration
	sortOrder     storefront.SortOrder

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	engine   *storefront.Engine
	scramble *scramble.Engine

	// Navigation state
	page         Page
	focus        focusArea
	navCursor    int
	footerCursor int

	// Store state
	cursor    int
	search    textinput.Model
	searching bool
	detail    viewport.Model
	status    string

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	userPrefs := opts.Prefs
	if userPrefs == nil {
		userPrefs = prefs.NewMemory()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = SnapshotPollInterval
	}
	frameInterval := opts.Scramble.FrameInterval
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	stagger := opts.Scramble.Stagger
	if stagger <= 0 {
		stagger = DefaultStagger
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search products..."
	ti.CharLimit = 64

	return Model{
		ctx:           ctx,
		store:         opts.Store,
		prefs:         userPrefs,
		logger:        logger,
		pollTick:      pollTick,
		frameInterval: frameInterval,
		stagger:       stagger,
		sortOrder:     opts.Sort,
		theme:         GetTheme(opts.ThemeName),
		keys:          DefaultKeyMap(),
		scramble:      scramble.New(scramble.WithTotalFrames(opts.Scramble.TotalFrames)),
		page:          PageHome,
		search:        ti,
		detail:        viewport.New(LayoutDetailWidth-4, 8),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		// Fetch snapshot immediately on start
		cmds = append(cmds, fetchSnapshotCmd(m.store), tickCmd(m.pollTick))
	}
	cmds = append(cmds, m.staggerNav(), m.revealTitle())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case revealMsg:
		return m, m.reveal(msg.ID, msg.Text)

	case frameMsg:
		ticket := scramble.Ticket(msg)
		if m.scramble.Step(ticket) {
			return m, frameCmd(ticket, m.frameInterval)
		}
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.detailOpen() {
		return m.renderDetail()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.detailOpen() {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.NavMenu):
		if m.focus == focusNav {
			m.focus = focusContent
			return m, nil
		}
		m.focus = focusNav
		m.navCursor = int(m.page)
		return m, m.staggerNav()

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusFooter {
			m.focus = focusContent
			return m, nil
		}
		m.focus = focusFooter
		return m, m.hoverFooter()
	}

	switch m.focus {
	case focusNav:
		return m.handleNavKey(msg)
	case focusFooter:
		return m.handleFooterKey(msg)
	}

	if m.page == PageStore {
		return m.handleStoreKey(msg)
	}
	return m, nil
}

// cycleTheme switches to the next theme and remembers it.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if err := m.prefs.SetTheme(m.theme.Name); err != nil {
		m.logger.Warn("save theme", zap.String("theme", m.theme.Name), zap.Error(err))
	}
}

// handleTick polls the load state until the catalog has arrived.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.store == nil || m.snapshot.Loaded {
		return m, nil
	}
	return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))
}

// applySnapshot builds the storefront engine the first time a loaded
// snapshot arrives.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.Loaded || m.engine != nil {
		return
	}

	m.engine = storefront.New(snap.Catalog, m.prefs, storefront.WithLogger(m.logger))
	if err := m.engine.SetSort(m.sortOrder); err != nil {
		m.logger.Warn("ignoring sort order", zap.Error(err))
	}
	m.cursor = 0
	if snap.Failed() {
		m.status = "Catalog unavailable: " + snap.LastError.Error()
	}
}

// reveal starts the scramble for id and schedules its frames.
func (m Model) reveal(id, text string) tea.Cmd {
	ticket := m.scramble.Start(id, text)
	if !m.scramble.Active(id) {
		return nil
	}
	return frameCmd(ticket, m.frameInterval)
}

// staggerNav reveals the nav labels one after another.
func (m Model) staggerNav() tea.Cmd {
	plan := scramble.StaggerPlan(navLabels(), m.stagger)
	cmds := make([]tea.Cmd, 0, len(plan))
	for _, item := range plan {
		cmds = append(cmds, revealAfterCmd(item.Label, item.Delay))
	}
	return tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	bodyHeight := max(m.height-chromeRows, 1)

	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	b.WriteString(m.renderPageTitle())
	b.WriteString("\n")
	b.WriteString(m.renderPage(bodyHeight))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// revealMsg asks for a label to start scrambling.
type revealMsg scramble.Label

// frameMsg advances one scramble job by a frame.
type frameMsg scramble.Ticket

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func revealAfterCmd(label scramble.Label, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return revealMsg(label) }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealMsg(label)
	})
}

func frameCmd(t scramble.Ticket, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
