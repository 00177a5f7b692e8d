package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HIESENBERG503/AIO-BST/internal/ui/keymap"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/theme"
)

// DefaultMaxLines caps the console scrollback when no limit is configured
const DefaultMaxLines = 1000

// ConsolePanel is the scrolling output pane
type ConsolePanel struct {
	theme *theme.Theme
	keys  keymap.KeyMap

	// Bubbles viewport component
	viewport viewport.Model

	width  int
	height int

	lines    []string
	maxLines int
	now      func() time.Time
}

// NewConsolePanel creates an empty console keeping at most maxLines lines
func NewConsolePanel(maxLines int, th *theme.Theme) *ConsolePanel {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	km := keymap.DefaultKeyMap()
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: km.PageDown,
		PageUp:   km.PageUp,
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		Up:   km.Up,
		Down: km.Down,
	}

	cp := &ConsolePanel{
		theme:    th,
		keys:     km,
		viewport: vp,
		maxLines: maxLines,
		now:      time.Now,
	}
	cp.updateContent()
	return cp
}

// Update handles scrolling keys while the console is focused
func (cp *ConsolePanel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, cp.keys.GoToTop):
			cp.viewport.GotoTop()
			return nil
		case key.Matches(keyMsg, cp.keys.GoToBottom):
			cp.viewport.GotoBottom()
			return nil
		case key.Matches(keyMsg, cp.keys.ClearConsole):
			cp.Clear()
			return nil
		}
	}

	var cmd tea.Cmd
	cp.viewport, cmd = cp.viewport.Update(msg)
	return cmd
}

// AddEntry appends a timestamped log line
func (cp *ConsolePanel) AddEntry(level, source, message string) {
	timestamp := cp.now().Format("15:04:05")
	cp.append(cp.theme.RenderLogEntry(timestamp, level, source, cp.wrap(message, 25)))
}

// AddCommand echoes a submitted command line
func (cp *ConsolePanel) AddCommand(command string) {
	cp.append(cp.theme.TitleStyle.Render("$ ") + lipgloss.NewStyle().Foreground(cp.theme.Colors.TextPrimary).Render(command))
}

// AddOutput appends raw tool output, line by line
func (cp *ConsolePanel) AddOutput(output string) {
	style := lipgloss.NewStyle().Foreground(cp.theme.Colors.Primary)
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		cp.append(style.Render(cp.wrap(line, 0)))
	}
}

func (cp *ConsolePanel) append(line string) {
	follow := cp.viewport.AtBottom()

	cp.lines = append(cp.lines, strings.Split(line, "\n")...)
	if len(cp.lines) > cp.maxLines {
		cp.lines = cp.lines[len(cp.lines)-cp.maxLines:]
	}
	cp.updateContent()

	if follow {
		cp.viewport.GotoBottom()
	}
}

func (cp *ConsolePanel) updateContent() {
	if len(cp.lines) == 0 {
		cp.viewport.SetContent(cp.theme.MutedStyle.Render("Select a tool to begin..."))
		return
	}
	cp.viewport.SetContent(strings.Join(cp.lines, "\n"))
}

// wrap breaks text to the viewport width minus reserved columns
func (cp *ConsolePanel) wrap(text string, reserved int) string {
	width := cp.viewport.Width - reserved
	if cp.viewport.Width <= 0 || width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// Clear drops all lines
func (cp *ConsolePanel) Clear() {
	cp.lines = nil
	cp.updateContent()
	cp.viewport.GotoTop()
}

// Lines returns the number of lines held
func (cp *ConsolePanel) Lines() int {
	return len(cp.lines)
}

// SetSize updates the inner dimensions of the console
func (cp *ConsolePanel) SetSize(width, height int) {
	cp.width = width
	cp.height = height

	cp.viewport.Width = width
	cp.viewport.Height = height - 1
	if cp.viewport.Height < 1 {
		cp.viewport.Height = 1
	}
	cp.updateContent()
}

// View renders the console with its header line
func (cp *ConsolePanel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, cp.renderHeader(), cp.viewport.View())
}

func (cp *ConsolePanel) renderHeader() string {
	var position string
	switch {
	case cp.viewport.AtTop() && cp.viewport.AtBottom():
		position = "All"
	case cp.viewport.AtTop():
		position = "Top"
	case cp.viewport.AtBottom():
		position = "Bottom"
	default:
		position = fmt.Sprintf("%.0f%%", cp.viewport.ScrollPercent()*100)
	}

	title := cp.theme.TitleStyle.Render("CONSOLE")
	info := cp.theme.MutedStyle.Render(fmt.Sprintf("Lines: %d | %s", len(cp.lines), position))

	spacing := cp.width - lipgloss.Width(title) - lipgloss.Width(info)
	if spacing < 1 {
		spacing = 1
	}
	return title + strings.Repeat(" ", spacing) + info
}
