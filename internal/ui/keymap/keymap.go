package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection and interaction
	Select key.Binding
	Cancel key.Binding

	// Panel navigation
	NextPanel     key.Binding
	PrevPanel     key.Binding
	FocusSessions key.Binding
	FocusConsole  key.Binding
	FocusTools    key.Binding
	ToggleSidebar key.Binding

	// Application controls
	Quit key.Binding
	Help key.Binding

	// Console controls
	PageUp       key.Binding
	PageDown     key.Binding
	GoToTop      key.Binding
	GoToBottom   key.Binding
	ClearConsole key.Binding

	// Session controls
	NewSession    key.Binding
	DeleteSession key.Binding

	// Parameter dialog
	Confirm   key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default key mappings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),

		// Selection and interaction
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select/toggle"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		// Panel navigation
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		FocusSessions: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus sessions"),
		),
		FocusConsole: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "focus console"),
		),
		FocusTools: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "focus tools"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle sidebar"),
		),

		// Application controls
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),

		// Console controls
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		GoToTop: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "go to top"),
		),
		GoToBottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "go to bottom"),
		),
		ClearConsole: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear console"),
		),

		// Session controls
		NewSession: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new session"),
		),
		DeleteSession: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete session"),
		),

		// Parameter dialog
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "execute"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// DialogKeyMap returns the keys active while the parameter dialog is open
func DialogKeyMap() KeyMap {
	km := DefaultKeyMap()
	quit := key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	)
	return KeyMap{
		Confirm:   km.Confirm,
		Cancel:    km.Cancel,
		NextField: km.NextField,
		PrevField: km.PrevField,
		Quit:      quit,
	}
}

// ShortHelp returns key bindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.NextPanel, k.Help, k.Quit,
	}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.NextPanel, k.PrevPanel, k.FocusSessions, k.FocusConsole, k.FocusTools},
		{k.NewSession, k.DeleteSession, k.ToggleSidebar},
		{k.PageUp, k.PageDown, k.GoToTop, k.GoToBottom, k.ClearConsole},
		{k.Help, k.Quit},
	}
}

// ContextualHelp returns help for a specific context
func ContextualHelp(context string) [][]key.Binding {
	km := DefaultKeyMap()
	switch context {
	case "dialog":
		dk := DialogKeyMap()
		return [][]key.Binding{
			{dk.NextField, dk.PrevField},
			{dk.Confirm, dk.Cancel},
		}
	case "sessions":
		return [][]key.Binding{
			{km.Up, km.Down, km.Select},
			{km.NewSession, km.DeleteSession},
		}
	case "console":
		return [][]key.Binding{
			{km.Up, km.Down, km.PageUp, km.PageDown},
			{km.GoToTop, km.GoToBottom, km.ClearConsole},
		}
	case "tools":
		return [][]key.Binding{
			{km.Up, km.Down, km.Left, km.Right},
			{km.Select},
		}
	default:
		return km.FullHelp()
	}
}

// IsGlobalKey checks if a key is global (works outside the dialog)
func IsGlobalKey(msg tea.KeyMsg) bool {
	km := DefaultKeyMap()
	return key.Matches(msg, km.Quit, km.Help, km.NextPanel, km.PrevPanel, km.ToggleSidebar)
}

// IsPanelSwitchKey checks if a key switches panels
func IsPanelSwitchKey(msg tea.KeyMsg) bool {
	km := DefaultKeyMap()
	return key.Matches(msg, km.NextPanel, km.PrevPanel, km.FocusSessions, km.FocusConsole, km.FocusTools)
}
