package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// LayoutMode represents different responsive layout modes
type LayoutMode int

const (
	// LargeLayout - Three panels: Sessions | Console | Tools (≥120 cols)
	LargeLayout LayoutMode = iota
	// MediumLayout - Sessions | Tools with the console below (80-119 cols)
	MediumLayout
	// SmallLayout - Single focused panel (<80 cols)
	SmallLayout
)

// Breakpoints and fixed heights
const (
	LargeBreakpoint  = 120
	MediumBreakpoint = 80

	HeaderHeight = 2 // status line plus its bottom border
	FooterHeight = 1 // help line

	sidebarMinWidth = 24
	sidebarRatio    = 0.20
	toolsRatio      = 0.38
	toolsMinWidth   = 36
	consoleRatio    = 0.35
)

// String returns the string representation of LayoutMode
func (l LayoutMode) String() string {
	switch l {
	case LargeLayout:
		return "large"
	case MediumLayout:
		return "medium"
	case SmallLayout:
		return "small"
	default:
		return "unknown"
	}
}

// Dimensions represents width and height measurements
type Dimensions struct {
	Width  int
	Height int
}

// LayoutDimensions holds the outer size of every region, borders included.
// A zero size means the region is not shown in the current mode.
type LayoutDimensions struct {
	Terminal Dimensions
	Header   Dimensions
	Sidebar  Dimensions
	Console  Dimensions
	Tools    Dimensions
	Single   Dimensions // focused panel in the small layout
	Footer   Dimensions
}

// DetermineLayout picks the layout mode for a terminal width
func DetermineLayout(width int) LayoutMode {
	switch {
	case width >= LargeBreakpoint:
		return LargeLayout
	case width >= MediumBreakpoint:
		return MediumLayout
	default:
		return SmallLayout
	}
}

// Layout handles responsive design calculations and rendering
type Layout struct {
	mode        LayoutMode
	sidebarOpen bool
	dimensions  LayoutDimensions
}

// New creates a new layout instance
func New(width, height int, sidebarOpen bool) *Layout {
	l := &Layout{sidebarOpen: sidebarOpen}
	l.Update(width, height)
	return l
}

// Update recalculates layout for new terminal dimensions
func (l *Layout) Update(width, height int) {
	l.mode = DetermineLayout(width)
	l.dimensions = calculateDimensions(l.mode, width, height, l.sidebarOpen)
}

// SetSidebar shows or hides the sessions sidebar
func (l *Layout) SetSidebar(open bool) {
	l.sidebarOpen = open
	l.Update(l.dimensions.Terminal.Width, l.dimensions.Terminal.Height)
}

// SidebarOpen reports whether the sidebar is requested
func (l *Layout) SidebarOpen() bool {
	return l.sidebarOpen
}

// Mode returns the current layout mode
func (l *Layout) Mode() LayoutMode {
	return l.mode
}

// Dimensions returns the current layout dimensions
func (l *Layout) Dimensions() LayoutDimensions {
	return l.dimensions
}

func calculateDimensions(mode LayoutMode, width, height int, sidebarOpen bool) LayoutDimensions {
	dims := LayoutDimensions{
		Terminal: Dimensions{Width: width, Height: height},
		Header:   Dimensions{Width: width, Height: HeaderHeight},
		Footer:   Dimensions{Width: width, Height: FooterHeight},
	}

	bodyHeight := height - HeaderHeight - FooterHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	sidebarWidth := 0
	if sidebarOpen && mode != SmallLayout {
		sidebarWidth = int(float64(width) * sidebarRatio)
		if sidebarWidth < sidebarMinWidth {
			sidebarWidth = sidebarMinWidth
		}
		dims.Sidebar = Dimensions{Width: sidebarWidth, Height: bodyHeight}
	}

	switch mode {
	case LargeLayout:
		toolsWidth := int(float64(width) * toolsRatio)
		if toolsWidth < toolsMinWidth {
			toolsWidth = toolsMinWidth
		}
		dims.Tools = Dimensions{Width: toolsWidth, Height: bodyHeight}
		dims.Console = Dimensions{Width: width - sidebarWidth - toolsWidth, Height: bodyHeight}

	case MediumLayout:
		consoleHeight := int(float64(bodyHeight) * consoleRatio)
		if consoleHeight < 3 {
			consoleHeight = 3
		}
		topHeight := bodyHeight - consoleHeight
		if dims.Sidebar.Width > 0 {
			dims.Sidebar.Height = topHeight
		}
		dims.Tools = Dimensions{Width: width - sidebarWidth, Height: topHeight}
		dims.Console = Dimensions{Width: width, Height: consoleHeight}

	case SmallLayout:
		dims.Single = Dimensions{Width: width, Height: bodyHeight}
	}

	return dims
}

// Inner returns the content area of a bordered, horizontally padded panel
func Inner(d Dimensions) Dimensions {
	inner := Dimensions{Width: d.Width - 4, Height: d.Height - 2}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// RenderThreePanel renders the large layout: [Sessions] | [Console] | [Tools]
func (l *Layout) RenderThreePanel(sidebar, console, tools string) string {
	if l.dimensions.Sidebar.Width == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, console, tools)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, console, tools)
}

// RenderTwoPanel renders the medium layout: [Sessions] | [Tools] over [Console]
func (l *Layout) RenderTwoPanel(sidebar, tools, console string) string {
	top := tools
	if l.dimensions.Sidebar.Width > 0 {
		top = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, tools)
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, console)
}

// RenderWithHeader adds the header above any layout
func (l *Layout) RenderWithHeader(header, content string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

// RenderWithFooter adds the footer below any layout
func (l *Layout) RenderWithFooter(content, footer string) string {
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

// EnsureNoOverlap clips rendered content to the terminal bounds
func (l *Layout) EnsureNoOverlap(content string) string {
	return lipgloss.NewStyle().
		MaxWidth(l.dimensions.Terminal.Width).
		MaxHeight(l.dimensions.Terminal.Height).
		Render(content)
}

// IsLayoutTransition checks if a size change requires layout mode transition
func IsLayoutTransition(oldWidth, newWidth int) bool {
	return DetermineLayout(oldWidth) != DetermineLayout(newWidth)
}
