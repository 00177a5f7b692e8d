package panel

import (
	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
)

// RowKind tells category headers from tool cards
type RowKind int

const (
	CategoryRow RowKind = iota
	ToolRow
)

// Row is one visible line of the panel, in render order
type Row struct {
	Kind     RowKind
	Category catalog.Category
	Tool     catalog.Tool // set for ToolRow
	Expanded bool         // set for CategoryRow
	Count    int          // tools in the category, for CategoryRow
	Hovered  bool
}

type rowKey struct {
	category catalog.Category
	toolID   string
}

func (r Row) key() rowKey {
	if r.Kind == ToolRow {
		return rowKey{category: r.Category, toolID: r.Tool.ID}
	}
	return rowKey{category: r.Category}
}

// Rows derives the visible rows: every category header in catalog order,
// followed by the tool cards of the expanded category.
func (s *State) Rows() []Row {
	var rows []Row
	for _, cat := range s.catalog.Categories() {
		tools := s.catalog.ToolsFor(cat)
		expanded := s.IsExpanded(cat)

		header := Row{Kind: CategoryRow, Category: cat, Expanded: expanded, Count: len(tools)}
		header.Hovered = header.key() == s.hover
		rows = append(rows, header)

		if !expanded {
			continue
		}
		for _, tool := range tools {
			row := Row{Kind: ToolRow, Category: cat, Tool: tool}
			row.Hovered = row.key() == s.hover
			rows = append(rows, row)
		}
	}
	return rows
}

// hoverIndex locates the hovered row
func (s *State) hoverIndex(rows []Row) (int, bool) {
	for i, row := range rows {
		if row.key() == s.hover {
			return i, true
		}
	}
	return 0, false
}

// Hovered returns the row under the cursor
func (s *State) Hovered() (Row, bool) {
	rows := s.Rows()
	i, ok := s.hoverIndex(rows)
	if !ok {
		return Row{}, false
	}
	return rows[i], true
}

// HoverTool moves the cursor onto a tool card, if it is visible
func (s *State) HoverTool(toolID string) bool {
	for _, row := range s.Rows() {
		if row.Kind == ToolRow && row.Tool.ID == toolID {
			s.hover = row.key()
			return true
		}
	}
	return false
}

// HoverRow moves the cursor onto the i-th visible row
func (s *State) HoverRow(i int) bool {
	rows := s.Rows()
	if i < 0 || i >= len(rows) {
		return false
	}
	s.hover = rows[i].key()
	return true
}

// HoverCategory moves the cursor onto a category header
func (s *State) HoverCategory(cat catalog.Category) bool {
	if !s.catalog.Has(cat) {
		return false
	}
	s.hover = rowKey{category: cat}
	return true
}

// MoveHover shifts the cursor by delta rows, clamped to the visible rows. A
// cursor whose row disappeared (collapsed category) restarts from its
// category header.
func (s *State) MoveHover(delta int) {
	rows := s.Rows()
	if len(rows) == 0 {
		s.hover = rowKey{}
		return
	}

	i, ok := s.hoverIndex(rows)
	if !ok {
		i = 0
		if s.hover.category != "" {
			for j, row := range rows {
				if row.Kind == CategoryRow && row.Category == s.hover.category {
					i = j
					break
				}
			}
		}
		delta = 0
	}

	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	s.hover = rows[i].key()
}

// Activate acts on the hovered row: headers toggle, tool cards open the
// dialog.
func (s *State) Activate() {
	row, ok := s.Hovered()
	if !ok {
		return
	}

	switch row.Kind {
	case CategoryRow:
		s.Toggle(row.Category)
	case ToolRow:
		s.SelectTool(row.Tool)
	}
}
