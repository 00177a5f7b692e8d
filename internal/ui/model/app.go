package model

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/config"
	"github.com/HIESENBERG503/AIO-BST/internal/executor"
	"github.com/HIESENBERG503/AIO-BST/internal/logger"
	"github.com/HIESENBERG503/AIO-BST/internal/panel"
	"github.com/HIESENBERG503/AIO-BST/internal/session"
	"github.com/HIESENBERG503/AIO-BST/internal/sysstat"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/components"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/keymap"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/layout"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/theme"
)

const sampleTimeout = 2 * time.Second

// Options wires the model to the rest of the application. Only Config is
// required.
type Options struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Store   *session.Store
	Logger  *log.Logger

	// Execute receives confirmed runs, normally Dispatcher.Dispatch
	Execute panel.ExecuteFunc
	// Sampler feeds the header status bar; nil disables sampling
	Sampler sysstat.Sampler
	// OnCatalogReload lets the executor follow catalog reloads
	OnCatalogReload func(*catalog.Catalog)
}

// AppModel is the root Bubble Tea model of the console
type AppModel struct {
	ctx        context.Context
	cancelFunc context.CancelFunc

	cfg      *config.Config
	logger   *log.Logger
	sampler  sysstat.Sampler
	onReload func(*catalog.Catalog)

	// Layout and display
	layout       *layout.Layout
	theme        *theme.Theme
	focused      FocusedComponent
	showHelp     bool
	terminalSize tea.WindowSizeMsg
	state        AppState

	// Components
	header   *components.Header
	sessions *components.SessionsPanel
	console  *components.ConsolePanel
	tools    *components.ToolsPanel
	help     help.Model

	store *session.Store

	// execution ID -> session it was started under
	pending map[string]string
	running int

	keyMap keymap.KeyMap
}

// NewAppModel creates the root model
func NewAppModel(opts Options) AppModel {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Builtin()
	}
	store := opts.Store
	if store == nil {
		store = session.NewStore()
	}
	l := opts.Logger
	if l == nil {
		l = logger.Discard()
	}

	th := theme.New(cfg.UI.Theme)
	initialSize := tea.WindowSizeMsg{Width: 80, Height: 24}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Colors.Accent)
	h.Styles.ShortDesc = th.MutedStyle
	h.Styles.ShortSeparator = th.MutedStyle
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	m := AppModel{
		ctx:        ctx,
		cancelFunc: cancel,
		cfg:        cfg,
		logger:     l,
		sampler:    opts.Sampler,
		onReload:   opts.OnCatalogReload,
		layout:     layout.New(initialSize.Width, initialSize.Height, cfg.UI.SidebarOpen),
		theme:      th,
		focused:    FocusTools,
		state:      StateInitializing,
		header:     components.NewHeader(cfg.UI.ClockFormat, th),
		sessions:   components.NewSessionsPanel(store, th),
		console:    components.NewConsolePanel(cfg.UI.MaxLogEntries, th),
		tools: components.NewToolsPanel(cat, opts.Execute, panel.Options{
			DefaultCategory: catalog.Category(cfg.UI.DefaultCategory),
			DefaultPort:     cfg.UI.DefaultPort,
		}, th),
		help:    h,
		store:   store,
		pending: make(map[string]string),
		keyMap:  keymap.DefaultKeyMap(),
	}
	m.updateComponentSizes()
	return m
}

// Init implements tea.Model interface
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.header.Init(),
		tick(),
		func() tea.Msg { return InitCompleteMsg{} },
	}
	if m.sampler != nil {
		cmds = append(cmds, m.sampleStats())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model interface
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case InitCompleteMsg:
		m.state = StateReady
		return m, logCmd("info", "system", fmt.Sprintf("%d tools loaded", m.tools.State().ToolCount()))

	case executor.StartedEvent:
		return m.handleStarted(msg)

	case executor.FinishedEvent:
		return m.handleFinished(msg)

	case components.SessionSelectedMsg:
		return m.handleSessionSelected(msg)

	case components.SessionDeletedMsg:
		m.syncHeaderSession()
		return m, nil

	case LogMsg:
		return m.handleLogMessage(msg)

	case ErrorMsg:
		return m.handleError(msg)

	case TickMsg:
		m.header.SetTime(msg.Time)
		return m, tick()

	case StatsMsg:
		return m.handleStats(msg)

	case CatalogReloadedMsg:
		return m.handleCatalogReload(msg)

	case spinner.TickMsg:
		return m, m.header.Update(msg)

	case QuitMsg:
		return m.handleQuit()

	default:
		// cursor blink and other textinput messages
		if m.tools.DialogOpen() {
			return m, m.tools.Update(msg)
		}
		return m, nil
	}
}

// View implements tea.Model interface
func (m AppModel) View() string {
	if m.terminalSize.Width == 0 || m.terminalSize.Height == 0 {
		return "Initializing..."
	}
	if m.terminalSize.Width < MinWidth || m.terminalSize.Height < MinHeight {
		return m.renderTooSmallMessage()
	}

	content := m.layout.RenderWithHeader(m.header.View(), m.renderBody())
	content = m.layout.RenderWithFooter(content, m.renderFooter())
	return m.layout.EnsureNoOverlap(content)
}

// handleResize handles terminal resize events
func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	oldWidth := m.terminalSize.Width

	m.terminalSize = msg
	m.layout.Update(msg.Width, msg.Height)
	m.updateComponentSizes()

	if layout.IsLayoutTransition(oldWidth, msg.Width) {
		m.logger.Debug("layout changed", "mode", m.layout.Mode(), "width", msg.Width, "height", msg.Height)
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the dialog is modal; only ctrl+c escapes it
	if m.tools.DialogOpen() {
		if key.Matches(msg, keymap.DialogKeyMap().Quit) {
			return m.handleQuit()
		}
		return m, m.tools.Update(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keyMap.Help, m.keyMap.Cancel) {
			m.showHelp = false
			return m, nil
		}
		if !key.Matches(msg, m.keyMap.Quit) {
			return m, nil
		}
	}

	if keymap.IsGlobalKey(msg) {
		return m.handleGlobalKeys(msg)
	}
	if keymap.IsPanelSwitchKey(msg) {
		return m.handlePanelSwitch(msg)
	}
	return m.routeKeyToComponent(msg)
}

// handleGlobalKeys processes globally available keys
func (m AppModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m.handleQuit()

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.layout.SetSidebar(!m.layout.SidebarOpen())
		m.updateComponentSizes()
		if m.focused == FocusSessions && !m.sessionsVisible() {
			m.focused = FocusTools
		}

	case key.Matches(msg, m.keyMap.NextPanel):
		m.cycleFocus(1)

	case key.Matches(msg, m.keyMap.PrevPanel):
		m.cycleFocus(-1)
	}
	return m, nil
}

// handlePanelSwitch handles direct focus keys
func (m AppModel) handlePanelSwitch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.FocusSessions):
		if !m.sessionsVisible() {
			m.layout.SetSidebar(true)
			m.updateComponentSizes()
		}
		m.focused = FocusSessions
	case key.Matches(msg, m.keyMap.FocusConsole):
		m.focused = FocusConsole
	case key.Matches(msg, m.keyMap.FocusTools):
		m.focused = FocusTools
	}
	return m, nil
}

// routeKeyToComponent routes keys to the currently focused component
func (m AppModel) routeKeyToComponent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focused {
	case FocusSessions:
		return m, m.sessions.Update(msg)
	case FocusConsole:
		return m, m.console.Update(msg)
	default:
		cmd := m.tools.Update(msg)
		if tool, ok := m.tools.State().Selected(); ok && m.tools.DialogOpen() {
			m.logger.Debug("configuring tool", "tool", tool.ID)
		}
		return m, cmd
	}
}

// panelRect is where a panel sits on screen, border included
type panelRect struct {
	which FocusedComponent
	x, y  int
	size  layout.Dimensions
}

func (r panelRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.size.Width && y >= r.y && y < r.y+r.size.Height
}

// panelRects mirrors renderBody
func (m AppModel) panelRects() []panelRect {
	d := m.layout.Dimensions()
	top := layout.HeaderHeight

	switch m.layout.Mode() {
	case layout.LargeLayout:
		return []panelRect{
			{which: FocusSessions, x: 0, y: top, size: d.Sidebar},
			{which: FocusConsole, x: d.Sidebar.Width, y: top, size: d.Console},
			{which: FocusTools, x: d.Sidebar.Width + d.Console.Width, y: top, size: d.Tools},
		}
	case layout.MediumLayout:
		return []panelRect{
			{which: FocusSessions, x: 0, y: top, size: d.Sidebar},
			{which: FocusTools, x: d.Sidebar.Width, y: top, size: d.Tools},
			{which: FocusConsole, x: 0, y: top + d.Tools.Height, size: d.Console},
		}
	default:
		return []panelRect{{which: m.focused, x: 0, y: top, size: d.Single}}
	}
}

// handleMouse routes a mouse event to the panel under the pointer. A left
// click also focuses that panel.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tools.DialogOpen() || m.showHelp {
		return m, nil
	}

	for _, r := range m.panelRects() {
		if !r.contains(msg.X, msg.Y) {
			continue
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.focused = r.which
		}

		// content starts inside the border and one column of padding
		x, y := msg.X-r.x-2, msg.Y-r.y-1
		switch r.which {
		case FocusTools:
			return m, m.tools.Mouse(msg, x, y)
		case FocusConsole:
			return m, m.console.Update(msg)
		}
		return m, nil
	}
	return m, nil
}

// sessionsVisible reports whether the sidebar can take focus. The small
// layout shows one panel at a time, so sessions are always reachable there.
func (m *AppModel) sessionsVisible() bool {
	return m.layout.Mode() == layout.SmallLayout || m.layout.SidebarOpen()
}

// cycleFocus moves focus through the visible panels
func (m *AppModel) cycleFocus(delta int) {
	order := []FocusedComponent{FocusSessions, FocusConsole, FocusTools}
	if !m.sessionsVisible() {
		order = order[1:]
	}

	current := 0
	for i, f := range order {
		if f == m.focused {
			current = i
			break
		}
	}
	next := (current + delta + len(order)) % len(order)
	m.focused = order[next]
}

func (m AppModel) handleStarted(msg executor.StartedEvent) (tea.Model, tea.Cmd) {
	m.running++
	m.header.SetRunning(m.running)

	sess := m.sessions.EnsureCurrent()
	m.pending[msg.ExecutionID] = sess.ID
	m.header.SetSession(sess.Name)

	m.console.AddCommand(commandLine(msg.ToolID, msg.Params))
	m.logger.Info("execution started", "id", msg.ExecutionID, "tool", msg.ToolID,
		"target", msg.Params[string(panel.FieldTarget)], "port", msg.Params[string(panel.FieldPort)])
	return m, nil
}

func (m AppModel) handleFinished(msg executor.FinishedEvent) (tea.Model, tea.Cmd) {
	result := msg.Result

	// runs cancelled before they started never reported a StartedEvent
	sessionID, ok := m.pending[result.ExecutionID]
	if ok {
		delete(m.pending, result.ExecutionID)
		m.running--
		m.header.SetRunning(m.running)
	} else {
		sessionID = m.sessions.EnsureCurrent().ID
	}

	status := result.Status
	if msg.Err != nil {
		status = executor.StatusError
	}
	_, err := m.store.RecordExecution(sessionID, session.Execution{
		ID:       result.ExecutionID,
		ToolID:   result.ToolID,
		Params:   result.Params,
		Status:   string(status),
		Output:   result.Output,
		Duration: result.Duration,
	})
	if err != nil {
		// the session was deleted while the run was in flight
		m.logger.Warn("execution not recorded", "id", result.ExecutionID, "err", err)
	}
	m.sessions.Refresh()

	if msg.Err != nil {
		m.logger.Error("execution failed", "id", result.ExecutionID, "tool", result.ToolID, "err", msg.Err)
		m.console.AddEntry("error", result.ToolID, msg.Err.Error())
		return m, nil
	}

	m.console.AddOutput(result.Output)
	m.console.AddEntry("info", result.ToolID, m.statusLine(string(status), result.Duration))
	m.logger.Info("execution finished", "id", result.ExecutionID, "tool", result.ToolID, "status", status, "duration", result.Duration)
	return m, nil
}

// handleSessionSelected switches the header to the session and replays its
// recorded executions into the console, oldest first.
func (m AppModel) handleSessionSelected(msg components.SessionSelectedMsg) (tea.Model, tea.Cmd) {
	m.header.SetSession(msg.Session.Name)

	execs, err := m.store.Executions(msg.Session.ID)
	if err != nil {
		m.logger.Warn("session history unavailable", "session", msg.Session.ID, "err", err)
		return m, nil
	}

	if len(execs) > 0 {
		m.console.AddEntry("info", "session", fmt.Sprintf("History of %s: %d executions", msg.Session.Name, len(execs)))
	}
	for i := len(execs) - 1; i >= 0; i-- {
		e := execs[i]
		m.console.AddCommand(commandLine(e.ToolID, e.Params))
		if e.Output != "" {
			m.console.AddOutput(e.Output)
		}
		level := "info"
		if e.Status == string(executor.StatusError) {
			level = "error"
		}
		m.console.AddEntry(level, e.ToolID, m.statusLine(e.Status, e.Duration))
	}
	return m, logCmd("info", "session", "Active session: "+msg.Session.Name)
}

func commandLine(toolID string, params map[string]string) string {
	return fmt.Sprintf("%s %s:%s", toolID, params[string(panel.FieldTarget)], params[string(panel.FieldPort)])
}

func (m AppModel) statusLine(status string, d time.Duration) string {
	return m.theme.RenderStatus(status) + " in " + d.Round(10*time.Millisecond).String()
}

// handleLogMessage appends a log entry to the console
func (m AppModel) handleLogMessage(msg LogMsg) (tea.Model, tea.Cmd) {
	m.console.AddEntry(msg.Level, msg.Category, msg.Message)
	return m, nil
}

// handleError processes error messages
func (m AppModel) handleError(msg ErrorMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		return m, nil
	}
	m.logger.Error(msg.Context, "err", msg.Err)
	return m, logCmd("error", "system", fmt.Sprintf("%s: %s", msg.Context, msg.Err))
}

func (m AppModel) handleStats(msg StatsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Debug("host sample failed", "err", msg.Err)
	} else {
		m.header.SetStats(msg.Stats)
	}
	if m.sampler == nil {
		return m, nil
	}

	interval := m.cfg.UI.StatsInterval
	sample := m.sampleStats()
	return m, tea.Tick(interval, func(time.Time) tea.Msg { return sample() })
}

func (m AppModel) handleCatalogReload(msg CatalogReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Catalog == nil {
		return m, nil
	}
	m.tools.SetCatalog(msg.Catalog)
	if m.onReload != nil {
		m.onReload(msg.Catalog)
	}
	m.logger.Info("catalog reloaded", "tools", msg.Catalog.Count())
	return m, logCmd("info", "catalog", fmt.Sprintf("Catalog reloaded: %d tools", msg.Catalog.Count()))
}

// handleQuit processes quit requests
func (m AppModel) handleQuit() (tea.Model, tea.Cmd) {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.state = StateShuttingDown
	return m, tea.Quit
}

func (m *AppModel) syncHeaderSession() {
	if s, ok := m.sessions.Current(); ok {
		m.header.SetSession(s.Name)
		return
	}
	m.header.SetSession("")
}

// sampleStats reads the host once
func (m AppModel) sampleStats() tea.Cmd {
	ctx, sampler := m.ctx, m.sampler
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, sampleTimeout)
		defer cancel()
		stats, err := sampler.Sample(ctx)
		return StatsMsg{Stats: stats, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func logCmd(level, category, message string) tea.Cmd {
	return func() tea.Msg {
		return LogMsg{Level: level, Message: message, Timestamp: time.Now(), Category: category}
	}
}

// updateComponentSizes pushes the layout dimensions into the components
func (m *AppModel) updateComponentSizes() {
	d := m.layout.Dimensions()
	m.header.SetWidth(d.Terminal.Width)

	if m.layout.Mode() == layout.SmallLayout {
		inner := layout.Inner(d.Single)
		m.sessions.SetSize(inner.Width, inner.Height)
		m.console.SetSize(inner.Width, inner.Height)
		m.tools.SetSize(inner.Width, inner.Height)
		return
	}

	sidebar := layout.Inner(d.Sidebar)
	console := layout.Inner(d.Console)
	tools := layout.Inner(d.Tools)
	m.sessions.SetSize(sidebar.Width, sidebar.Height)
	m.console.SetSize(console.Width, console.Height)
	m.tools.SetSize(tools.Width, tools.Height)
}

// renderBody renders the panels, or the dialog/help overlay in their place
func (m AppModel) renderBody() string {
	d := m.layout.Dimensions()
	bodyWidth := d.Terminal.Width
	bodyHeight := d.Terminal.Height - layout.HeaderHeight - layout.FooterHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if m.tools.DialogOpen() {
		return lipgloss.Place(bodyWidth, bodyHeight, lipgloss.Center, lipgloss.Center, m.tools.DialogView())
	}
	if m.showHelp {
		fullHelp := m.theme.PanelStyle.Render(m.help.FullHelpView(m.keyMap.FullHelp()))
		return lipgloss.Place(bodyWidth, bodyHeight, lipgloss.Center, lipgloss.Center, fullHelp)
	}

	switch m.layout.Mode() {
	case layout.LargeLayout:
		return m.layout.RenderThreePanel(
			m.renderPanel(m.sessions.View(), d.Sidebar, FocusSessions),
			m.renderPanel(m.console.View(), d.Console, FocusConsole),
			m.renderPanel(m.tools.View(), d.Tools, FocusTools),
		)
	case layout.MediumLayout:
		return m.layout.RenderTwoPanel(
			m.renderPanel(m.sessions.View(), d.Sidebar, FocusSessions),
			m.renderPanel(m.tools.View(), d.Tools, FocusTools),
			m.renderPanel(m.console.View(), d.Console, FocusConsole),
		)
	default:
		return m.renderPanel(m.focusedView(), d.Single, m.focused)
	}
}

func (m AppModel) focusedView() string {
	switch m.focused {
	case FocusSessions:
		return m.sessions.View()
	case FocusConsole:
		return m.console.View()
	default:
		return m.tools.View()
	}
}

// renderPanel draws a bordered panel of outer size d
func (m AppModel) renderPanel(content string, d layout.Dimensions, which FocusedComponent) string {
	if d.Width == 0 || d.Height == 0 {
		return ""
	}
	style := m.theme.PanelStyle
	if m.focused == which {
		style = m.theme.FocusedPanelStyle
	}
	return style.
		Width(d.Width - 2).
		Height(d.Height - 2).
		MaxHeight(d.Height).
		Render(content)
}

// renderFooter renders the contextual key help
func (m AppModel) renderFooter() string {
	context := m.focused.String()
	if m.tools.DialogOpen() {
		context = "dialog"
	}

	var bindings []key.Binding
	for _, group := range keymap.ContextualHelp(context) {
		bindings = append(bindings, group...)
	}
	if context != "dialog" {
		bindings = append(bindings, m.keyMap.NextPanel, m.keyMap.Help, m.keyMap.Quit)
	}

	m.help.Width = m.terminalSize.Width - 2
	return m.theme.FooterStyle.Render(m.help.ShortHelpView(bindings))
}

// renderTooSmallMessage renders a message when terminal is too small
func (m AppModel) renderTooSmallMessage() string {
	msg := fmt.Sprintf("Terminal too small: %dx%d\nMinimum required: %dx%d",
		m.terminalSize.Width, m.terminalSize.Height, MinWidth, MinHeight)
	return m.theme.ErrorStyle.Render(msg)
}

// Focused returns the panel holding the keyboard
func (m AppModel) Focused() FocusedComponent {
	return m.focused
}

// State returns the application state
func (m AppModel) State() AppState {
	return m.state
}

// Tools exposes the tools panel
func (m AppModel) Tools() *components.ToolsPanel {
	return m.tools
}

// Sessions exposes the sessions sidebar
func (m AppModel) Sessions() *components.SessionsPanel {
	return m.sessions
}

// Running returns the number of executions in flight
func (m AppModel) Running() int {
	return m.running
}
