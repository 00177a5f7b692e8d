package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HIESENBERG503/AIO-BST/internal/config"
)

// Theme contains all styling information for the TUI
type Theme struct {
	// Panel styles
	PanelStyle        lipgloss.Style
	FocusedPanelStyle lipgloss.Style
	HeaderStyle       lipgloss.Style
	FooterStyle       lipgloss.Style
	DialogStyle       lipgloss.Style

	// Text styles
	TitleStyle       lipgloss.Style
	DescriptionStyle lipgloss.Style
	MutedStyle       lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	WarningStyle     lipgloss.Style

	// Form styles
	LabelStyle        lipgloss.Style
	InputStyle        lipgloss.Style
	FocusedInputStyle lipgloss.Style
	ButtonStyle       lipgloss.Style

	Colors Colors

	categories map[string]lipgloss.Color
}

// Colors defines the color palette
type Colors struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
	Focused   lipgloss.Color

	// Adaptive colors for light/dark terminals
	TextPrimary lipgloss.AdaptiveColor
}

// DefaultColors is the terminal-green palette used without a config file
var DefaultColors = Colors{
	Primary:   lipgloss.Color("#E0E0E0"),
	Secondary: lipgloss.Color("#6B7280"),
	Accent:    lipgloss.Color("#00FF41"),
	Success:   lipgloss.Color("#00FF41"),
	Warning:   lipgloss.Color("#FFB000"),
	Error:     lipgloss.Color("#FF3B30"),
	Border:    lipgloss.Color("#444444"),
	Focused:   lipgloss.Color("#888888"),
	TextPrimary: lipgloss.AdaptiveColor{
		Light: "236",
		Dark:  "252",
	},
}

// New creates a theme from configuration, falling back to DefaultColors for
// unset entries.
func New(cfg config.ThemeConfig) *Theme {
	colors := DefaultColors
	if cfg.Accent != "" {
		colors.Accent = lipgloss.Color(cfg.Accent)
	}
	if cfg.Border != "" {
		colors.Border = lipgloss.Color(cfg.Border)
	}
	if cfg.Focused != "" {
		colors.Focused = lipgloss.Color(cfg.Focused)
	}

	t := &Theme{Colors: colors, categories: make(map[string]lipgloss.Color)}
	for cat, color := range cfg.Categories {
		if color != "" {
			t.categories[strings.ToLower(cat)] = lipgloss.Color(color)
		}
	}
	t.initializeStyles()
	return t
}

// Default returns the theme with no overrides
func Default() *Theme {
	return New(config.ThemeConfig{})
}

// initializeStyles sets up all the styling rules
func (t *Theme) initializeStyles() {
	t.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1)

	t.FocusedPanelStyle = t.PanelStyle.
		BorderForeground(t.Colors.Focused)

	t.HeaderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Colors.Border).
		Padding(0, 1)

	t.FooterStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Secondary).
		Padding(0, 1)

	t.DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Colors.Accent).
		Padding(1, 2)

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Accent).
		Bold(true)

	t.DescriptionStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Secondary).
		Italic(true)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Secondary)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Error).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Success).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Warning).
		Bold(true)

	t.LabelStyle = lipgloss.NewStyle().
		Foreground(t.Colors.Secondary).
		Bold(true)

	t.InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1)

	t.FocusedInputStyle = t.InputStyle.
		BorderForeground(t.Colors.Accent)

	t.ButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(t.Colors.Accent).
		Bold(true).
		Padding(0, 2)
}

// GetStatusColor returns the appropriate color for a status
func (t *Theme) GetStatusColor(status string) lipgloss.Color {
	switch status {
	case "running":
		return t.Colors.Warning
	case "error", "failed":
		return t.Colors.Error
	case "success", "completed":
		return t.Colors.Success
	default:
		return t.Colors.Secondary
	}
}

// GetLogLevelColor returns the appropriate color for a log level
func (t *Theme) GetLogLevelColor(level string) lipgloss.Color {
	switch level {
	case "error":
		return t.Colors.Error
	case "warn", "warning":
		return t.Colors.Warning
	case "info":
		return t.Colors.Primary
	case "debug":
		return t.Colors.Secondary
	default:
		return lipgloss.Color("248")
	}
}

// RenderStatus renders a status with appropriate color
func (t *Theme) RenderStatus(status string) string {
	return lipgloss.NewStyle().Foreground(t.GetStatusColor(status)).Bold(true).Render(strings.ToUpper(status))
}

// RenderLogEntry renders a console line with level-based coloring. Multiline
// messages are indented under the first line.
func (t *Theme) RenderLogEntry(timestamp, level, source, message string) string {
	timestampStyle := lipgloss.NewStyle().Foreground(t.Colors.Secondary)
	levelStyle := lipgloss.NewStyle().Foreground(t.GetLogLevelColor(level)).Bold(true).Width(5).Align(lipgloss.Right)
	sourceStyle := lipgloss.NewStyle().Foreground(t.Colors.Accent).Width(8).Align(lipgloss.Left)
	messageStyle := lipgloss.NewStyle().Foreground(t.Colors.TextPrimary)

	lines := strings.Split(message, "\n")
	result := lipgloss.JoinHorizontal(
		lipgloss.Top,
		timestampStyle.Render(timestamp),
		" ",
		levelStyle.Render(strings.ToUpper(level)),
		" ",
		sourceStyle.Render(source),
		" ",
		messageStyle.Render(lines[0]),
	)

	if len(lines) > 1 {
		indent := strings.Repeat(" ", lipgloss.Width(timestamp)+1+5+1+8+1)
		for _, line := range lines[1:] {
			result += "\n" + indent + messageStyle.Render(line)
		}
	}
	return result
}
