package model

import (
	"time"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/sysstat"
)

// Message types for the console TUI. Execution progress arrives as
// executor.StartedEvent and executor.FinishedEvent.

// InitCompleteMsg marks the end of start-up
type InitCompleteMsg struct{}

// LogMsg represents a line for the console
type LogMsg struct {
	Level     string // debug, info, warn, error
	Message   string
	Timestamp time.Time
	Category  string // tool, session, catalog, system
}

// ErrorMsg represents application errors
type ErrorMsg struct {
	Err     error
	Context string
}

// TickMsg advances the header clock
type TickMsg struct {
	Time time.Time
}

// StatsMsg carries a host sample for the header
type StatsMsg struct {
	Stats sysstat.Stats
	Err   error
}

// CatalogReloadedMsg is sent when the catalog file changed on disk
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
}

// QuitMsg requests a clean shutdown
type QuitMsg struct{}
