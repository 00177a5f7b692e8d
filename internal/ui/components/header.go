package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/HIESENBERG503/AIO-BST/internal/sysstat"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/theme"
)

// DefaultClockFormat is used when no clock format is configured
const DefaultClockFormat = "15:04:05"

// Header is the status line across the top of the screen
type Header struct {
	theme *theme.Theme

	// Bubbles components
	spinner spinner.Model

	width       int
	clockFormat string

	session  string
	running  int
	stats    sysstat.Stats
	hasStats bool
	now      time.Time
}

// NewHeader creates a header showing the clock in clockFormat
func NewHeader(clockFormat string, th *theme.Theme) *Header {
	if clockFormat == "" {
		clockFormat = DefaultClockFormat
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(th.Colors.Warning)

	return &Header{
		theme:       th,
		spinner:     s,
		clockFormat: clockFormat,
		now:         time.Now(),
	}
}

// Init starts the spinner
func (h *Header) Init() tea.Cmd {
	return h.spinner.Tick
}

// Update advances the spinner
func (h *Header) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(tick)
		return cmd
	}
	return nil
}

// SetSession sets the session name shown, empty for none
func (h *Header) SetSession(name string) {
	h.session = name
}

// SetRunning sets the number of executions in flight
func (h *Header) SetRunning(n int) {
	h.running = n
}

// SetStats records the latest host sample
func (h *Header) SetStats(s sysstat.Stats) {
	h.stats = s
	h.hasStats = true
}

// SetTime updates the clock
func (h *Header) SetTime(t time.Time) {
	h.now = t
}

// SetWidth updates the rendered width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header line
func (h *Header) View() string {
	brand := h.theme.TitleStyle.Render("NEXUS")

	var sessionText string
	if h.session == "" {
		sessionText = h.theme.MutedStyle.Render("NO ACTIVE SESSION")
	} else {
		sessionText = h.theme.MutedStyle.Render("SESSION: ") +
			lipgloss.NewStyle().Foreground(h.theme.Colors.TextPrimary).Render(strings.ToUpper(h.session))
	}
	left := brand + "  " + sessionText

	var status []string
	if h.running > 0 {
		status = append(status, h.spinner.View()+h.theme.WarningStyle.Render(fmt.Sprintf(" %d RUNNING", h.running)))
	}
	status = append(status,
		h.theme.SuccessStyle.Render("● SYSTEM OK"),
		h.theme.SuccessStyle.Render("● CONNECTED"),
		h.theme.SuccessStyle.Render("● SECURE"),
	)
	if h.hasStats {
		status = append(status, h.theme.MutedStyle.Render(h.stats.String()))
	}
	clock := h.theme.TitleStyle.Render(h.now.Format(h.clockFormat))

	inner := h.width - 2
	right := strings.Join(append(status, clock), "  ")
	// shed indicators from the right until the line fits
	for h.width > 0 && len(status) > 0 && lipgloss.Width(left)+lipgloss.Width(right)+1 > inner {
		status = status[:len(status)-1]
		right = strings.Join(append(status, clock), "  ")
	}

	spacing := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	line := left + strings.Repeat(" ", spacing) + right
	if h.width > 0 {
		line = ansi.Truncate(line, inner, "")
	}

	style := h.theme.HeaderStyle
	if h.width > 0 {
		style = style.Width(h.width)
	}
	return style.Render(line)
}
