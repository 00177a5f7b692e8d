package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/executor"
	"github.com/HIESENBERG503/AIO-BST/internal/panel"
	"github.com/HIESENBERG503/AIO-BST/internal/session"
	"github.com/HIESENBERG503/AIO-BST/internal/sysstat"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/components"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/layout"
)

type confirmed struct {
	toolID string
	params panel.Params
}

func newTestApp(t *testing.T, runs *[]confirmed) (AppModel, *session.Store) {
	t.Helper()
	store := session.NewStore()
	app := NewAppModel(Options{
		Store: store,
		Execute: func(toolID string, params panel.Params) {
			if runs != nil {
				*runs = append(*runs, confirmed{toolID: toolID, params: params})
			}
		},
	})
	return resize(app, 160, 40), store
}

func update(app AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := app.Update(msg)
	return next.(AppModel), cmd
}

func resize(app AppModel, width, height int) AppModel {
	app, _ = update(app, tea.WindowSizeMsg{Width: width, Height: height})
	return app
}

func press(app AppModel, keys ...tea.KeyMsg) AppModel {
	for _, k := range keys {
		app, _ = update(app, k)
	}
	return app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewAppModel(t *testing.T) {
	app := NewAppModel(Options{})

	if app.State() != StateInitializing {
		t.Errorf("Expected state %v, got %v", StateInitializing, app.State())
	}
	if app.Focused() != FocusTools {
		t.Errorf("Expected focus %v, got %v", FocusTools, app.Focused())
	}
	if app.Init() == nil {
		t.Error("Init should return a command")
	}
	if got := app.Tools().State().ToolCount(); got != 30 {
		t.Errorf("built-in catalog should be used, got %d tools", got)
	}
}

func TestInitComplete(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, cmd := update(app, InitCompleteMsg{})

	if app.State() != StateReady {
		t.Errorf("state = %v, want ready", app.State())
	}
	if cmd == nil {
		t.Fatal("init should log the catalog size")
	}
	if msg, ok := cmd().(LogMsg); !ok || !strings.Contains(msg.Message, "30 tools") {
		t.Errorf("unexpected init message %#v", cmd())
	}
}

func TestHandleResize(t *testing.T) {
	testCases := []struct {
		name   string
		width  int
		height int
		mode   layout.LayoutMode
	}{
		{"large", 160, 40, layout.LargeLayout},
		{"medium", 100, 30, layout.MediumLayout},
		{"small", 60, 20, layout.SmallLayout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := resize(NewAppModel(Options{}), tc.width, tc.height)
			if app.layout.Mode() != tc.mode {
				t.Errorf("mode = %v, want %v", app.layout.Mode(), tc.mode)
			}
			if app.terminalSize.Width != tc.width || app.terminalSize.Height != tc.height {
				t.Errorf("terminal size = %+v", app.terminalSize)
			}

			view := ansi.Strip(app.View())
			if lines := strings.Count(view, "\n") + 1; lines > tc.height {
				t.Errorf("view has %d lines, terminal has %d", lines, tc.height)
			}
			if !strings.Contains(view, "NO ACTIVE SESSION") {
				t.Errorf("header missing:\n%s", view)
			}
		})
	}
}

func TestViewBeforeResizeAndTooSmall(t *testing.T) {
	app := NewAppModel(Options{})
	if got := app.View(); got != "Initializing..." {
		t.Errorf("View() before the first resize = %q", got)
	}

	app = resize(app, 30, 8)
	if view := ansi.Strip(app.View()); !strings.Contains(view, "Terminal too small") {
		t.Errorf("expected a too-small message, got %q", view)
	}
}

func TestFocusCycling(t *testing.T) {
	app, _ := newTestApp(t, nil)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}

	want := []FocusedComponent{FocusSessions, FocusConsole, FocusTools}
	for _, w := range want {
		app = press(app, tab)
		if app.Focused() != w {
			t.Fatalf("focus = %v, want %v", app.Focused(), w)
		}
	}

	app = press(app, shiftTab)
	if app.Focused() != FocusConsole {
		t.Errorf("shift+tab: focus = %v, want console", app.Focused())
	}

	app = press(app, runes("1"))
	if app.Focused() != FocusSessions {
		t.Errorf("1: focus = %v, want sessions", app.Focused())
	}
	app = press(app, runes("3"))
	if app.Focused() != FocusTools {
		t.Errorf("3: focus = %v, want tools", app.Focused())
	}
}

func TestToggleSidebar(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = press(app, runes("1"))

	app = press(app, tea.KeyMsg{Type: tea.KeyCtrlB})
	if app.layout.SidebarOpen() {
		t.Fatal("ctrl+b should close the sidebar")
	}
	if app.Focused() == FocusSessions {
		t.Error("focus must leave the hidden sidebar")
	}
	if app.layout.Dimensions().Sidebar.Width != 0 {
		t.Error("hidden sidebar should take no columns")
	}

	// tab now skips the sidebar
	for i := 0; i < 4; i++ {
		app = press(app, tea.KeyMsg{Type: tea.KeyTab})
		if app.Focused() == FocusSessions {
			t.Fatal("tab should skip the hidden sidebar")
		}
	}

	app = press(app, runes("1"))
	if !app.layout.SidebarOpen() || app.Focused() != FocusSessions {
		t.Error("focusing sessions should reopen the sidebar")
	}
}

func TestExecutionFlow(t *testing.T) {
	var runs []confirmed
	app, store := newTestApp(t, &runs)

	// network is expanded; move onto nmap, open the dialog and run it
	app = press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if !app.Tools().DialogOpen() {
		t.Fatal("dialog should be open")
	}
	if view := ansi.Strip(app.View()); !strings.Contains(view, "CONFIGURE NMAP") {
		t.Errorf("dialog should overlay the body:\n%s", view)
	}

	for _, r := range "10.0.0.1" {
		app = press(app, runes(string(r)))
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyEnter})

	if len(runs) != 1 {
		t.Fatalf("executor called %d times, want 1", len(runs))
	}
	want := confirmed{toolID: "nmap", params: panel.Params{Target: "10.0.0.1", Port: "80"}}
	if runs[0] != want {
		t.Errorf("executor got %+v, want %+v", runs[0], want)
	}

	started := executor.StartedEvent{
		ExecutionID: "exec-1",
		ToolID:      "nmap",
		Params:      want.params.Map(),
		StartedAt:   time.Now(),
	}
	app, _ = update(app, started)
	if app.Running() != 1 {
		t.Errorf("Running() = %d, want 1", app.Running())
	}

	app, _ = update(app, executor.FinishedEvent{Result: executor.Result{
		ExecutionID: "exec-1",
		ToolID:      "nmap",
		Params:      want.params.Map(),
		Status:      executor.StatusSuccess,
		Output:      "22/tcp open ssh",
		Duration:    1500 * time.Millisecond,
	}})
	if app.Running() != 0 {
		t.Errorf("Running() = %d, want 0", app.Running())
	}

	sessions := store.List()
	if len(sessions) != 1 {
		t.Fatalf("expected an auto-created session, got %d", len(sessions))
	}
	if sessions[0].Name != session.DefaultName || sessions[0].MessageCount != 1 {
		t.Errorf("session = %+v", sessions[0])
	}

	execs, err := store.Executions(sessions[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(execs) != 1 || execs[0].ToolID != "nmap" || execs[0].Status != "success" {
		t.Errorf("executions = %+v", execs)
	}

	view := ansi.Strip(app.View())
	for _, w := range []string{"$ nmap 10.0.0.1:80", "22/tcp open ssh", "SESSION: NEW SESSION", "1 execution"} {
		if !strings.Contains(view, w) {
			t.Errorf("view missing %q:\n%s", w, view)
		}
	}
}

func TestExecutionFailure(t *testing.T) {
	app, store := newTestApp(t, nil)

	params := map[string]string{"target": "example.com", "port": "443"}
	app, _ = update(app, executor.StartedEvent{ExecutionID: "exec-2", ToolID: "nikto", Params: params})
	app, _ = update(app, executor.FinishedEvent{
		Result: executor.Result{ExecutionID: "exec-2", ToolID: "nikto", Params: params, Status: executor.StatusError},
		Err:    errors.New("deadline exceeded"),
	})

	sessions := store.List()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	execs, _ := store.Executions(sessions[0].ID)
	if len(execs) != 1 || execs[0].Status != "error" {
		t.Errorf("executions = %+v", execs)
	}
	if view := ansi.Strip(app.View()); !strings.Contains(view, "deadline exceeded") {
		t.Errorf("error should reach the console:\n%s", view)
	}
}

func TestFinishedWithoutStart(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, _ = update(app, executor.StartedEvent{ExecutionID: "a", ToolID: "nmap"})

	// cancelled while queued: finished arrives without a start
	app, _ = update(app, executor.FinishedEvent{
		Result: executor.Result{ExecutionID: "b", ToolID: "nmap", Status: executor.StatusError},
		Err:    errors.New("context canceled"),
	})
	if app.Running() != 1 {
		t.Errorf("Running() = %d, want the started run to stay counted", app.Running())
	}
}

func TestDialogIsModal(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	app, cmd := update(app, runes("q"))
	if isQuit(cmd) {
		t.Fatal("q must type into the dialog, not quit")
	}
	if got := app.Tools().State().Params().Target; got != "q" {
		t.Errorf("target = %q, want q", got)
	}

	// tab switches fields instead of panels
	app = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Focused() != FocusTools {
		t.Errorf("focus moved to %v while the dialog was open", app.Focused())
	}

	_, cmd = update(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit even with the dialog open")
	}
}

func TestQuit(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, cmd := update(app, runes("q"))
	if !isQuit(cmd) {
		t.Error("q should quit")
	}
	if app.State() != StateShuttingDown {
		t.Errorf("state = %v, want shutting down", app.State())
	}
}

func TestHelpToggle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app = press(app, runes("?"))
	if !app.showHelp {
		t.Fatal("? should show help")
	}
	// keys other than quit are swallowed by the help overlay
	app = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Focused() != FocusTools {
		t.Error("help overlay should swallow navigation")
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("esc should close help")
	}
}

func TestCatalogReload(t *testing.T) {
	var reloaded *catalog.Catalog
	app := NewAppModel(Options{OnCatalogReload: func(c *catalog.Catalog) { reloaded = c }})
	app = resize(app, 160, 40)

	next, err := catalog.New(
		[]catalog.Category{"web"},
		map[catalog.Category][]catalog.Tool{"web": {{ID: "nikto", Name: "Nikto"}}},
	)
	if err != nil {
		t.Fatal(err)
	}

	app, cmd := update(app, CatalogReloadedMsg{Catalog: next})
	if reloaded != next {
		t.Error("reload hook should receive the new catalog")
	}
	if got := app.Tools().State().ToolCount(); got != 1 {
		t.Errorf("tools panel holds %d tools, want 1", got)
	}
	if _, ok := app.Tools().State().Expanded(); ok {
		t.Error("network no longer exists, so the panel should collapse")
	}
	if cmd == nil {
		t.Error("reload should be logged to the console")
	}
}

func TestSessionMessages(t *testing.T) {
	app, store := newTestApp(t, nil)
	s := store.Create("Recon")

	app, _ = update(app, runes("1"))
	app.Sessions().Refresh()
	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should select the session")
	}
	app, _ = update(app, cmd())
	if view := ansi.Strip(app.View()); !strings.Contains(view, "SESSION: RECON") {
		t.Errorf("header should show the selected session:\n%s", view)
	}

	app, cmd = update(app, runes("d"))
	if cmd == nil {
		t.Fatal("d should delete the session")
	}
	app, _ = update(app, cmd())
	if _, err := store.Get(s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("session should be gone, got %v", err)
	}
	if view := ansi.Strip(app.View()); !strings.Contains(view, "NO ACTIVE SESSION") {
		t.Errorf("header should clear after deleting the current session:\n%s", view)
	}
}

func TestStatsMsg(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, cmd := update(app, StatsMsg{Stats: sysstat.Stats{CPUPercent: 12, MemPercent: 40}})

	if cmd != nil {
		t.Error("without a sampler no further sample is scheduled")
	}
	if view := ansi.Strip(app.View()); !strings.Contains(view, "CPU 12% MEM 40%") {
		t.Errorf("header should show host stats:\n%s", view)
	}
}

func TestFocusedComponentString(t *testing.T) {
	testCases := map[FocusedComponent]string{
		FocusSessions:        "sessions",
		FocusConsole:         "console",
		FocusTools:           "tools",
		FocusedComponent(42): "unknown",
	}
	for f, want := range testCases {
		if got := f.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", f, got, want)
		}
	}
}

func TestSessionHistoryReplay(t *testing.T) {
	app, store := newTestApp(t, nil)
	s := store.Create("Audit")

	runs := []session.Execution{
		{
			ID: "exec-1", ToolID: "nmap", Status: "success", Duration: 1200 * time.Millisecond,
			Params: map[string]string{"target": "10.0.0.1", "port": "22"},
			Output: "22/tcp open ssh",
		},
		{
			ID: "exec-2", ToolID: "nikto", Status: "error", Duration: 300 * time.Millisecond,
			Params: map[string]string{"target": "10.0.0.2", "port": "8080"},
		},
	}
	for _, run := range runs {
		if _, err := store.RecordExecution(s.ID, run); err != nil {
			t.Fatal(err)
		}
	}

	s, _ = store.Get(s.ID)
	app, cmd := update(app, components.SessionSelectedMsg{Session: s})
	if cmd == nil {
		t.Error("selecting a session should log it")
	}

	view := ansi.Strip(app.View())
	for _, want := range []string{
		"History of Audit: 2 executions",
		"$ nmap 10.0.0.1:22",
		"22/tcp open ssh",
		"SUCCESS in 1.2s",
		"$ nikto 10.0.0.2:8080",
		"ERROR in 300ms",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("console missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "$ nmap") > strings.Index(view, "$ nikto") {
		t.Error("history should replay oldest first")
	}
}

func TestSessionWithoutHistory(t *testing.T) {
	app, store := newTestApp(t, nil)
	s := store.Create("Empty")

	app, _ = update(app, components.SessionSelectedMsg{Session: s})
	if view := ansi.Strip(app.View()); strings.Contains(view, "History of") {
		t.Errorf("a session without runs has nothing to replay:\n%s", view)
	}
}

func TestMouseOnToolsPanel(t *testing.T) {
	var runs []confirmed
	app, _ := newTestApp(t, &runs)
	app = press(app, runes("2"))
	if app.Focused() != FocusConsole {
		t.Fatalf("focus = %v, want console", app.Focused())
	}

	d := app.layout.Dimensions()
	// border, panel header, network header, then the nmap card
	x := d.Sidebar.Width + d.Console.Width + 4
	y := layout.HeaderHeight + 3

	app, _ = update(app, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if row, _ := app.Tools().State().Hovered(); row.Tool.ID != "nmap" {
		t.Errorf("hovered %q, want nmap", row.Tool.ID)
	}
	if app.Focused() != FocusConsole {
		t.Error("motion alone should not move focus")
	}

	app, _ = update(app, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if app.Focused() != FocusTools {
		t.Errorf("click should focus the tools panel, got %v", app.Focused())
	}
	if !app.Tools().DialogOpen() {
		t.Fatal("click on a card should open the dialog")
	}

	for _, r := range "10.0.0.9" {
		app = press(app, runes(string(r)))
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	if len(runs) != 1 || runs[0].toolID != "nmap" {
		t.Errorf("runs = %+v, want one nmap run", runs)
	}
}

func TestMouseOutsidePanels(t *testing.T) {
	app, _ := newTestApp(t, nil)
	before := app.Focused()

	// the header line
	app, cmd := update(app, tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd != nil || app.Focused() != before {
		t.Error("clicks on the header should be ignored")
	}

	d := app.layout.Dimensions()
	app, _ = update(app, tea.MouseMsg{X: 3, Y: layout.HeaderHeight + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if d.Sidebar.Width > 0 && app.Focused() != FocusSessions {
		t.Errorf("click in the sidebar should focus sessions, got %v", app.Focused())
	}
}
