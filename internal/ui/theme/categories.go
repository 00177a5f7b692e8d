package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
)

// FallbackCategory lends its look to categories without one of their own
const FallbackCategory catalog.Category = "network"

type categoryLook struct {
	icon  string
	color lipgloss.Color
}

var categoryLooks = map[catalog.Category]categoryLook{
	"network":      {icon: "⇄", color: "#00FF41"},
	"web":          {icon: "◍", color: "#00F0FF"},
	"password":     {icon: "⚿", color: "#FFB000"},
	"exploitation": {icon: "✹", color: "#FF3B30"},
	"wireless":     {icon: "≋", color: "#9B59B6"},
	"recon":        {icon: "⌕", color: "#3498DB"},
}

func lookFor(cat catalog.Category) categoryLook {
	if look, ok := categoryLooks[catalog.Category(strings.ToLower(string(cat)))]; ok {
		return look
	}
	return categoryLooks[FallbackCategory]
}

// CategoryIcon returns the glyph shown before a category header
func (t *Theme) CategoryIcon(cat catalog.Category) string {
	return lookFor(cat).icon
}

// CategoryColor returns the accent of a category. Configured overrides win,
// unknown categories get the fallback look.
func (t *Theme) CategoryColor(cat catalog.Category) lipgloss.Color {
	if color, ok := t.categories[strings.ToLower(string(cat))]; ok {
		return color
	}
	return lookFor(cat).color
}

// CategoryStyle renders text in the category accent
func (t *Theme) CategoryStyle(cat catalog.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.CategoryColor(cat)).Bold(true)
}
