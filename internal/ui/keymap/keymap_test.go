package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestGlobalKeys(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		global bool
		panel  bool
	}{
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, true, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, true, false},
		{"help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, true, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, true, true},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, true, true},
		{"ctrl+b", tea.KeyMsg{Type: tea.KeyCtrlB}, true, false},
		{"focus 2", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}}, false, true},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, false, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGlobalKey(tt.msg); got != tt.global {
				t.Errorf("IsGlobalKey(%q) = %v, want %v", tt.msg.String(), got, tt.global)
			}
			if got := IsPanelSwitchKey(tt.msg); got != tt.panel {
				t.Errorf("IsPanelSwitchKey(%q) = %v, want %v", tt.msg.String(), got, tt.panel)
			}
		})
	}
}

func TestDialogKeyMap(t *testing.T) {
	dk := DialogKeyMap()

	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, dk.Quit) {
		t.Error("ctrl+c should quit from the dialog")
	}
	if key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, dk.Quit) {
		t.Error("q must reach the text inputs while the dialog is open")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, dk.Cancel) {
		t.Error("esc should cancel the dialog")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyTab}, dk.NextField) {
		t.Error("tab should move to the next field")
	}
}

func TestContextualHelp(t *testing.T) {
	for _, ctx := range []string{"dialog", "sessions", "console", "tools"} {
		groups := ContextualHelp(ctx)
		if len(groups) == 0 {
			t.Errorf("no help for %s", ctx)
		}
	}
	if got, want := len(ContextualHelp("unknown")), len(DefaultKeyMap().FullHelp()); got != want {
		t.Errorf("fallback help has %d groups, want %d", got, want)
	}
}
