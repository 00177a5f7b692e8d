package layout

import "testing"

func TestDetermineLayout(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		expected LayoutMode
	}{
		{"Extra Large", 200, LargeLayout},
		{"Large Minimum", 120, LargeLayout},
		{"Medium Upper", 119, MediumLayout},
		{"Medium Lower", 80, MediumLayout},
		{"Small Upper", 79, SmallLayout},
		{"Tiny", 20, SmallLayout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetermineLayout(tc.width); got != tc.expected {
				t.Errorf("DetermineLayout(%d) = %v, want %v", tc.width, got, tc.expected)
			}
		})
	}
}

func TestPanelsFillTheWidth(t *testing.T) {
	testCases := []struct {
		name        string
		width       int
		height      int
		sidebarOpen bool
	}{
		{"large with sidebar", 160, 48, true},
		{"large without sidebar", 160, 48, false},
		{"large minimum", 120, 30, true},
		{"medium with sidebar", 100, 30, true},
		{"medium without sidebar", 100, 30, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.width, tc.height, tc.sidebarOpen)
			d := l.Dimensions()

			var top int
			switch l.Mode() {
			case LargeLayout:
				top = d.Sidebar.Width + d.Console.Width + d.Tools.Width
			case MediumLayout:
				top = d.Sidebar.Width + d.Tools.Width
				if d.Console.Width != tc.width {
					t.Errorf("console width = %d, want %d", d.Console.Width, tc.width)
				}
			}
			if top != tc.width {
				t.Errorf("panels span %d columns, want %d", top, tc.width)
			}

			if (d.Sidebar.Width > 0) != tc.sidebarOpen {
				t.Errorf("sidebar width = %d with sidebarOpen=%v", d.Sidebar.Width, tc.sidebarOpen)
			}

			body := tc.height - HeaderHeight - FooterHeight
			var used int
			if l.Mode() == LargeLayout {
				used = d.Tools.Height
			} else {
				used = d.Tools.Height + d.Console.Height
			}
			if used != body {
				t.Errorf("panels span %d rows, want %d", used, body)
			}
		})
	}
}

func TestSmallLayoutSinglePanel(t *testing.T) {
	l := New(60, 20, true)
	d := l.Dimensions()

	if l.Mode() != SmallLayout {
		t.Fatalf("mode = %v, want small", l.Mode())
	}
	if d.Sidebar.Width != 0 || d.Tools.Width != 0 || d.Console.Width != 0 {
		t.Errorf("small layout should only size the single panel, got %+v", d)
	}
	if d.Single.Width != 60 || d.Single.Height != 20-HeaderHeight-FooterHeight {
		t.Errorf("single = %+v", d.Single)
	}
}

func TestSetSidebar(t *testing.T) {
	l := New(160, 40, true)
	withSidebar := l.Dimensions().Console.Width

	l.SetSidebar(false)
	if l.SidebarOpen() {
		t.Error("sidebar should be closed")
	}
	if got := l.Dimensions().Console.Width; got <= withSidebar {
		t.Errorf("console should grow when the sidebar closes: %d -> %d", withSidebar, got)
	}
}

func TestInner(t *testing.T) {
	if got := Inner(Dimensions{Width: 40, Height: 10}); got != (Dimensions{Width: 36, Height: 8}) {
		t.Errorf("Inner = %+v", got)
	}
	if got := Inner(Dimensions{Width: 2, Height: 1}); got != (Dimensions{}) {
		t.Errorf("Inner should clamp at zero, got %+v", got)
	}
}

func TestIsLayoutTransition(t *testing.T) {
	if !IsLayoutTransition(130, 100) {
		t.Error("130 -> 100 crosses the large breakpoint")
	}
	if IsLayoutTransition(100, 90) {
		t.Error("100 -> 90 stays medium")
	}
}
