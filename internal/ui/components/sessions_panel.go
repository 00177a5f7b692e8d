package components

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HIESENBERG503/AIO-BST/internal/session"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/keymap"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/theme"
)

// SessionSelectedMsg is emitted when the active session changes
type SessionSelectedMsg struct {
	Session session.Session
}

// SessionDeletedMsg is emitted after a session is removed
type SessionDeletedMsg struct {
	ID string
}

// sessionItem adapts a session to list.DefaultItem
type sessionItem struct {
	session session.Session
	current bool
}

func (i sessionItem) Title() string {
	if i.current {
		return "● " + i.session.Name
	}
	return "  " + i.session.Name
}

func (i sessionItem) Description() string {
	if label := i.session.CountLabel(); label != "" {
		return "  " + label
	}
	return "  " + i.session.CreatedAt.Format(time.DateTime)
}

func (i sessionItem) FilterValue() string { return i.session.Name }

// SessionsPanel is the sidebar listing sessions
type SessionsPanel struct {
	store *session.Store
	theme *theme.Theme
	keys  keymap.KeyMap

	// Bubbles list component
	list list.Model

	current string

	width  int
	height int
}

// NewSessionsPanel creates the sidebar over store
func NewSessionsPanel(store *session.Store, th *theme.Theme) *SessionsPanel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(th.Colors.Accent).
		Bold(true)
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(th.Colors.Secondary).
		Italic(true)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(th.Colors.TextPrimary)
	delegate.Styles.NormalDesc = lipgloss.NewStyle().
		Foreground(th.Colors.Secondary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "SESSIONS"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("session", "sessions")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = th.TitleStyle
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.NoItems = th.MutedStyle

	sp := &SessionsPanel{
		store: store,
		theme: th,
		keys:  keymap.DefaultKeyMap(),
		list:  l,
	}
	sp.Refresh()
	return sp
}

// Update handles a key while the sidebar is focused
func (sp *SessionsPanel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, sp.keys.NewSession):
			created := sp.store.Create("")
			sp.current = created.ID
			sp.Refresh()
			return selected(created)
		case key.Matches(keyMsg, sp.keys.DeleteSession):
			return sp.deleteHovered()
		case key.Matches(keyMsg, sp.keys.Select):
			item, ok := sp.list.SelectedItem().(sessionItem)
			if !ok {
				return nil
			}
			sp.current = item.session.ID
			sp.Refresh()
			return selected(item.session)
		}
	}

	var cmd tea.Cmd
	sp.list, cmd = sp.list.Update(msg)
	return cmd
}

func (sp *SessionsPanel) deleteHovered() tea.Cmd {
	item, ok := sp.list.SelectedItem().(sessionItem)
	if !ok {
		return nil
	}
	if err := sp.store.Delete(item.session.ID); err != nil {
		return nil
	}
	if sp.current == item.session.ID {
		sp.current = ""
	}
	sp.Refresh()

	id := item.session.ID
	return func() tea.Msg { return SessionDeletedMsg{ID: id} }
}

func selected(s session.Session) tea.Cmd {
	return func() tea.Msg { return SessionSelectedMsg{Session: s} }
}

// Refresh reloads the list from the store, keeping the cursor on the same
// session where possible.
func (sp *SessionsPanel) Refresh() {
	var hovered string
	if item, ok := sp.list.SelectedItem().(sessionItem); ok {
		hovered = item.session.ID
	}

	// a removed session leaves the cursor on its neighbour
	sessions := sp.store.List()
	items := make([]list.Item, len(sessions))
	cursor := min(sp.list.Index(), len(sessions)-1)
	for i, s := range sessions {
		items[i] = sessionItem{session: s, current: s.ID == sp.current}
		if s.ID == hovered {
			cursor = i
		}
	}
	sp.list.SetItems(items)
	if len(items) > 0 {
		sp.list.Select(cursor)
	}
}

// Current returns the active session
func (sp *SessionsPanel) Current() (session.Session, bool) {
	if sp.current == "" {
		return session.Session{}, false
	}
	s, err := sp.store.Get(sp.current)
	if err != nil {
		return session.Session{}, false
	}
	return s, true
}

// EnsureCurrent returns the active session, creating one when there is none
func (sp *SessionsPanel) EnsureCurrent() session.Session {
	if s, ok := sp.Current(); ok {
		return s
	}
	created := sp.store.Create("")
	sp.current = created.ID
	sp.Refresh()
	return created
}

// SetSize updates the inner dimensions of the sidebar
func (sp *SessionsPanel) SetSize(width, height int) {
	sp.width = width
	sp.height = height
	sp.list.SetSize(width, height)
}

// View renders the session list
func (sp *SessionsPanel) View() string {
	return sp.list.View()
}
