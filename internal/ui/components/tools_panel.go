package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/panel"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/keymap"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/theme"
)

const (
	targetInput = iota
	portInput
	inputCount
)

// ToolsPanel renders the tool catalog and its parameter dialog
type ToolsPanel struct {
	state  panel.State
	theme  *theme.Theme
	keys   keymap.KeyMap
	dkeys  keymap.KeyMap
	inputs [inputCount]textinput.Model
	focus  int

	width  int
	height int
	offset int
}

// NewToolsPanel creates the panel over c. onExecute receives confirmed runs.
func NewToolsPanel(c *catalog.Catalog, onExecute panel.ExecuteFunc, opts panel.Options, th *theme.Theme) *ToolsPanel {
	target := textinput.New()
	target.Placeholder = "192.168.1.1 or example.com"
	target.Prompt = ""
	target.CharLimit = 0

	port := textinput.New()
	port.Placeholder = panel.DefaultPort
	port.Prompt = ""
	port.CharLimit = 0

	tp := &ToolsPanel{
		state:  panel.New(c, onExecute, opts),
		theme:  th,
		keys:   keymap.DefaultKeyMap(),
		dkeys:  keymap.DialogKeyMap(),
		inputs: [inputCount]textinput.Model{target, port},
	}
	for i := range tp.inputs {
		tp.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(th.Colors.TextPrimary)
		tp.inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(th.Colors.Accent)
	}
	return tp
}

// State exposes the underlying panel state
func (tp *ToolsPanel) State() *panel.State {
	return &tp.state
}

// DialogOpen reports whether the parameter dialog has the keyboard
func (tp *ToolsPanel) DialogOpen() bool {
	return tp.state.DialogOpen()
}

// SetSize updates the inner dimensions available to the panel
func (tp *ToolsPanel) SetSize(width, height int) {
	tp.width = width
	tp.height = height
	inputWidth := width - 8
	if inputWidth > 40 {
		inputWidth = 40
	}
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range tp.inputs {
		tp.inputs[i].Width = inputWidth
	}
}

// SetCatalog swaps in a reloaded catalog
func (tp *ToolsPanel) SetCatalog(c *catalog.Catalog) {
	wasOpen := tp.state.DialogOpen()
	tp.state.SetCatalog(c)
	if wasOpen && !tp.state.DialogOpen() {
		tp.blurInputs()
	}
}

// Update handles a key while the tools panel is focused or the dialog is open
func (tp *ToolsPanel) Update(msg tea.Msg) tea.Cmd {
	if tp.state.DialogOpen() {
		return tp.updateDialog(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, tp.keys.Up):
		tp.state.MoveHover(-1)
	case key.Matches(keyMsg, tp.keys.Down):
		tp.state.MoveHover(1)
	case key.Matches(keyMsg, tp.keys.Left):
		tp.collapseHovered()
	case key.Matches(keyMsg, tp.keys.Right):
		tp.expandHovered()
	case key.Matches(keyMsg, tp.keys.Select):
		tp.state.Activate()
		if tp.state.DialogOpen() {
			return tp.openDialog()
		}
	}
	return nil
}

func (tp *ToolsPanel) collapseHovered() {
	row, ok := tp.state.Hovered()
	if !ok {
		return
	}
	if tp.state.IsExpanded(row.Category) {
		tp.state.Toggle(row.Category)
		tp.state.HoverCategory(row.Category)
	}
}

func (tp *ToolsPanel) expandHovered() {
	row, ok := tp.state.Hovered()
	if !ok || row.Kind != panel.CategoryRow {
		return
	}
	if !tp.state.IsExpanded(row.Category) {
		tp.state.Toggle(row.Category)
	}
}

// Mouse handles a mouse event at x, y relative to the panel content. Motion
// hovers the row under the pointer, a left click activates it and the wheel
// moves the cursor.
func (tp *ToolsPanel) Mouse(msg tea.MouseMsg, x, y int) tea.Cmd {
	if tp.state.DialogOpen() {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		tp.state.MoveHover(-1)
		return nil
	case tea.MouseButtonWheelDown:
		tp.state.MoveHover(1)
		return nil
	}

	headerHeight := lipgloss.Height(tp.renderHeader())
	line := y - headerHeight
	if x < 0 || x >= tp.width || line < 0 || line >= tp.height-headerHeight {
		return nil
	}
	if !tp.state.HoverRow(tp.offset + line) {
		return nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		tp.state.Activate()
		if tp.state.DialogOpen() {
			return tp.openDialog()
		}
	}
	return nil
}

// Select opens the dialog for a tool, as a click on its card would
func (tp *ToolsPanel) Select(tool catalog.Tool) tea.Cmd {
	tp.state.SelectTool(tool)
	tp.state.HoverTool(tool.ID)
	return tp.openDialog()
}

func (tp *ToolsPanel) openDialog() tea.Cmd {
	params := tp.state.Params()
	tp.inputs[targetInput].SetValue(params.Target)
	tp.inputs[portInput].SetValue(params.Port)
	tp.inputs[portInput].CursorEnd()
	tp.focus = targetInput
	return tp.focusInputs()
}

func (tp *ToolsPanel) focusInputs() tea.Cmd {
	var cmd tea.Cmd
	for i := range tp.inputs {
		if i == tp.focus {
			cmd = tp.inputs[i].Focus()
			continue
		}
		tp.inputs[i].Blur()
	}
	return cmd
}

func (tp *ToolsPanel) blurInputs() {
	for i := range tp.inputs {
		tp.inputs[i].Blur()
	}
}

func (tp *ToolsPanel) updateDialog(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, tp.dkeys.Cancel):
			tp.state.Cancel()
			tp.blurInputs()
			return nil
		case key.Matches(keyMsg, tp.dkeys.Confirm):
			tp.syncParams()
			tp.state.Confirm()
			tp.blurInputs()
			return nil
		case key.Matches(keyMsg, tp.dkeys.NextField):
			tp.focus = (tp.focus + 1) % inputCount
			return tp.focusInputs()
		case key.Matches(keyMsg, tp.dkeys.PrevField):
			tp.focus = (tp.focus + inputCount - 1) % inputCount
			return tp.focusInputs()
		}
	}

	var cmd tea.Cmd
	tp.inputs[tp.focus], cmd = tp.inputs[tp.focus].Update(msg)
	tp.syncParams()
	return cmd
}

// syncParams copies the text inputs into the panel form
func (tp *ToolsPanel) syncParams() {
	tp.state.UpdateParam(panel.FieldTarget, tp.inputs[targetInput].Value())
	tp.state.UpdateParam(panel.FieldPort, tp.inputs[portInput].Value())
}

// View renders the category list
func (tp *ToolsPanel) View() string {
	header := tp.renderHeader()
	rows := tp.state.Rows()
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, tp.theme.MutedStyle.Render("No tools configured"))
	}

	lines := make([]string, 0, len(rows))
	hovered := 0
	for i, row := range rows {
		if row.Hovered {
			hovered = i
		}
		lines = append(lines, tp.renderRow(row))
	}

	visible := tp.height - lipgloss.Height(header)
	if visible < 1 {
		visible = 1
	}
	tp.scrollTo(hovered, visible, len(lines))
	end := tp.offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines[tp.offset:end], "\n"))
}

// scrollTo keeps the hovered row inside the visible window
func (tp *ToolsPanel) scrollTo(index, visible, total int) {
	if index < tp.offset {
		tp.offset = index
	}
	if index >= tp.offset+visible {
		tp.offset = index - visible + 1
	}
	if maxOffset := total - visible; tp.offset > maxOffset {
		tp.offset = maxOffset
	}
	if tp.offset < 0 {
		tp.offset = 0
	}
}

func (tp *ToolsPanel) renderHeader() string {
	title := tp.theme.TitleStyle.Render("KALI TOOLS")
	count := tp.theme.MutedStyle.Render(fmt.Sprintf("%d AVAILABLE", tp.state.ToolCount()))

	spacing := tp.width - lipgloss.Width(title) - lipgloss.Width(count)
	if spacing < 1 {
		spacing = 1
	}
	return title + strings.Repeat(" ", spacing) + count
}

func (tp *ToolsPanel) renderRow(row panel.Row) string {
	cursor := "  "
	if row.Hovered {
		cursor = tp.theme.TitleStyle.Render("> ")
	}

	if row.Kind == panel.CategoryRow {
		arrow := "▸"
		if row.Expanded {
			arrow = "▾"
		}
		style := tp.theme.CategoryStyle(row.Category)
		label := fmt.Sprintf("%s %s %s", arrow, tp.theme.CategoryIcon(row.Category), strings.ToUpper(string(row.Category)))
		return cursor + style.Render(label) + tp.theme.MutedStyle.Render(fmt.Sprintf(" (%d)", row.Count))
	}

	name := row.Tool.Name
	if name == "" {
		name = row.Tool.ID
	}
	nameStyle := lipgloss.NewStyle().Foreground(tp.theme.Colors.TextPrimary)
	if row.Hovered {
		nameStyle = tp.theme.CategoryStyle(row.Category)
	}
	line := cursor + "    " + nameStyle.Render(name)

	if row.Tool.Description != "" {
		room := tp.width - lipgloss.Width(line) - 3
		if room > 8 {
			line += tp.theme.MutedStyle.Render(" · " + ansi.Truncate(row.Tool.Description, room, "…"))
		}
	}
	return line
}

// DialogView renders the parameter dialog, empty when it is closed
func (tp *ToolsPanel) DialogView() string {
	snap := tp.state.Snapshot()
	if !snap.DialogOpen || snap.SelectedTool == nil {
		return ""
	}
	tool := *snap.SelectedTool
	_, category, _ := tp.state.Catalog().Lookup(tool.ID)

	name := tool.Name
	if name == "" {
		name = tool.ID
	}
	title := tp.theme.CategoryStyle(category).Render(tp.theme.CategoryIcon(category) + " CONFIGURE " + strings.ToUpper(name))

	parts := []string{title}
	if tool.Description != "" {
		parts = append(parts, tp.theme.DescriptionStyle.Render(tool.Description))
	}
	parts = append(parts, "")

	labels := [inputCount]string{"TARGET", "PORT"}
	for i := range tp.inputs {
		style := tp.theme.InputStyle
		if i == tp.focus {
			style = tp.theme.FocusedInputStyle
		}
		parts = append(parts,
			tp.theme.LabelStyle.Render(labels[i]),
			style.Render(tp.inputs[i].View()),
		)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		tp.theme.ButtonStyle.Render("EXECUTE"),
		"  ",
		tp.theme.MutedStyle.Render("[ CANCEL ]"),
	)
	hint := tp.theme.MutedStyle.Render("enter execute · esc cancel · tab switch field")
	parts = append(parts, "", buttons, hint)

	return tp.theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
