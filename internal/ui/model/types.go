package model

// FocusedComponent defines which panel currently has the keyboard
type FocusedComponent int

const (
	FocusSessions FocusedComponent = iota
	FocusConsole
	FocusTools
)

// String returns the string representation of FocusedComponent
func (f FocusedComponent) String() string {
	switch f {
	case FocusSessions:
		return "sessions"
	case FocusConsole:
		return "console"
	case FocusTools:
		return "tools"
	default:
		return "unknown"
	}
}

// AppState represents the overall application state
type AppState int

const (
	StateInitializing AppState = iota
	StateReady
	StateShuttingDown
)

// Minimum terminal size the panels are laid out for
const (
	MinWidth  = 40
	MinHeight = 10
)
