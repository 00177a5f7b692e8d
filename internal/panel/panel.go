// Package panel holds the state of the tool catalog panel: which category is
// expanded, which row is hovered, and the parameter dialog of the selected
// tool. It has no rendering or terminal dependencies; the UI layer renders
// Rows() and forwards user events to the methods below.
package panel

import (
	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
)

// DefaultPort pre-fills the port field of the parameter dialog
const DefaultPort = "80"

// Field names an editable field of the parameter dialog
type Field string

const (
	FieldTarget Field = "target"
	FieldPort   Field = "port"
)

// Params is the transient parameter form of the dialog. Port is free text and
// is passed through to the executor untouched.
type Params struct {
	Target string
	Port   string
}

// Map returns the params in the generic form executors accept
func (p Params) Map() map[string]string {
	return map[string]string{
		string(FieldTarget): p.Target,
		string(FieldPort):   p.Port,
	}
}

// ExecuteFunc receives a confirmed tool run. It is called synchronously from
// Confirm and must not block; asynchronous executors start their own work.
type ExecuteFunc func(toolID string, params Params)

// Options tune the initial state of a panel
type Options struct {
	// DefaultCategory is expanded on creation when it exists in the catalog
	DefaultCategory catalog.Category
	// DefaultPort overrides DefaultPort for new selections
	DefaultPort string
}

// Snapshot is a read-only copy of the panel state
type Snapshot struct {
	ExpandedCategory catalog.Category // empty when collapsed
	SelectedTool     *catalog.Tool
	DialogOpen       bool
	ToolParams       Params
}

// State is the panel state. The zero value is not usable; call New.
type State struct {
	catalog   *catalog.Catalog
	onExecute ExecuteFunc
	defaults  Params

	expanded catalog.Category
	hover    rowKey

	selected     catalog.Tool
	hasSelection bool
	dialogOpen   bool
	params       Params
}

// New creates a panel over c. onExecute may be nil, in which case confirmed
// runs are dropped.
func New(c *catalog.Catalog, onExecute ExecuteFunc, opts Options) State {
	if c == nil {
		c, _ = catalog.New(nil, nil)
	}

	port := opts.DefaultPort
	if port == "" {
		port = DefaultPort
	}

	s := State{
		catalog:   c,
		onExecute: onExecute,
		defaults:  Params{Target: "", Port: port},
	}
	s.params = s.defaults
	s.expanded = initialCategory(c, opts.DefaultCategory)
	if s.expanded != "" {
		s.hover = rowKey{category: s.expanded}
	}
	return s
}

// initialCategory picks the configured default, else the first category
func initialCategory(c *catalog.Catalog, preferred catalog.Category) catalog.Category {
	if preferred != "" && c.Has(preferred) {
		return preferred
	}
	if cats := c.Categories(); len(cats) > 0 {
		return cats[0]
	}
	return ""
}

// Catalog returns the catalog the panel renders
func (s *State) Catalog() *catalog.Catalog {
	return s.catalog
}

// ToolCount is the number shown as "N AVAILABLE"
func (s *State) ToolCount() int {
	return s.catalog.Count()
}

// Expanded returns the expanded category, if any
func (s *State) Expanded() (catalog.Category, bool) {
	return s.expanded, s.expanded != ""
}

// IsExpanded reports whether cat is the expanded category
func (s *State) IsExpanded(cat catalog.Category) bool {
	return cat != "" && s.expanded == cat
}

// Toggle collapses cat if it is expanded, otherwise expands it in place of
// any other category.
func (s *State) Toggle(cat catalog.Category) {
	if s.expanded == cat {
		s.expanded = ""
		return
	}
	s.expanded = cat
}

// SelectTool opens the dialog for tool with default params, replacing any
// previous selection and its edits.
func (s *State) SelectTool(tool catalog.Tool) {
	s.selected = tool
	s.hasSelection = true
	s.params = s.defaults
	s.dialogOpen = true
}

// UpdateParam replaces one field of the form. Values are not validated.
// Ignored while no tool is selected.
func (s *State) UpdateParam(field Field, value string) {
	if !s.hasSelection {
		return
	}
	switch field {
	case FieldTarget:
		s.params.Target = value
	case FieldPort:
		s.params.Port = value
	}
}

// Params returns the current form values
func (s *State) Params() Params {
	return s.params
}

// Selected returns the tool being configured
func (s *State) Selected() (catalog.Tool, bool) {
	return s.selected, s.hasSelection
}

// DialogOpen reports whether the parameter dialog is visible
func (s *State) DialogOpen() bool {
	return s.dialogOpen
}

// Cancel closes the dialog and discards the form
func (s *State) Cancel() {
	s.reset()
}

// Confirm hands the selected tool and a copy of the form to the executor
// callback, then closes the dialog. It returns false and does nothing when no
// tool is selected.
func (s *State) Confirm() bool {
	if !s.hasSelection {
		return false
	}

	toolID := s.selected.ID
	params := s.params
	s.reset()

	if s.onExecute != nil {
		s.onExecute(toolID, params)
	}
	return true
}

func (s *State) reset() {
	s.selected = catalog.Tool{}
	s.hasSelection = false
	s.dialogOpen = false
	s.params = s.defaults
}

// SetCatalog swaps in a reloaded catalog. The expansion survives if the
// category still exists; an open dialog is cancelled if its tool is gone.
func (s *State) SetCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	s.catalog = c

	if s.expanded != "" && !c.Has(s.expanded) {
		s.expanded = ""
	}
	if s.hasSelection {
		if _, _, err := c.Lookup(s.selected.ID); err != nil {
			s.reset()
		}
	}
	if _, ok := s.hoverIndex(s.Rows()); !ok {
		s.hover = rowKey{}
	}
}

// Snapshot copies the state for inspection
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		ExpandedCategory: s.expanded,
		DialogOpen:       s.dialogOpen,
		ToolParams:       s.params,
	}
	if s.hasSelection {
		tool := s.selected
		snap.SelectedTool = &tool
	}
	return snap
}
