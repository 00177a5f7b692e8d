package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTool is returned when a tool ID is not in the catalog
	ErrUnknownTool = errors.New("unknown tool")
	// ErrEmptyCatalog is returned when a catalog source holds no categories
	ErrEmptyCatalog = errors.New("catalog has no categories")
)

// Tool is a single invocable entry of the catalog
type Tool struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Category groups tools under a display key such as "network" or "web"
type Category string

// Catalog maps categories to their ordered tools. The category order is
// authoritative for rendering.
type Catalog struct {
	categories []Category
	tools      map[Category][]Tool
	index      map[string]Category
}

// New builds a catalog from an ordered category list and a tool mapping.
// Categories missing from the mapping are kept with no tools.
func New(categories []Category, tools map[Category][]Tool) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		tools:      make(map[Category][]Tool, len(categories)),
		index:      make(map[string]Category),
	}

	seen := make(map[Category]bool, len(categories))
	for _, cat := range categories {
		if cat == "" {
			return nil, fmt.Errorf("empty category name")
		}
		if seen[cat] {
			return nil, fmt.Errorf("duplicate category %q", cat)
		}
		seen[cat] = true
		c.categories = append(c.categories, cat)

		list := make([]Tool, 0, len(tools[cat]))
		for _, tool := range tools[cat] {
			if tool.ID == "" {
				return nil, fmt.Errorf("category %q: tool with empty id", cat)
			}
			if prev, dup := c.index[tool.ID]; dup {
				return nil, fmt.Errorf("tool %q listed in both %q and %q", tool.ID, prev, cat)
			}
			c.index[tool.ID] = cat
			list = append(list, tool)
		}
		c.tools[cat] = list
	}

	return c, nil
}

// Categories returns the categories in display order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ToolsFor returns the tools of a category, or nil for unknown categories
func (c *Catalog) ToolsFor(cat Category) []Tool {
	return c.tools[cat]
}

// Tools returns a copy of the category -> tools mapping
func (c *Catalog) Tools() map[Category][]Tool {
	out := make(map[Category][]Tool, len(c.tools))
	for cat, list := range c.tools {
		out[cat] = append([]Tool(nil), list...)
	}
	return out
}

// Has reports whether the category is part of the catalog
func (c *Catalog) Has(cat Category) bool {
	_, ok := c.tools[cat]
	return ok
}

// Lookup finds a tool and its category by ID
func (c *Catalog) Lookup(id string) (Tool, Category, error) {
	cat, ok := c.index[id]
	if !ok {
		return Tool{}, "", fmt.Errorf("%w: %s", ErrUnknownTool, id)
	}
	for _, tool := range c.tools[cat] {
		if tool.ID == id {
			return tool, cat, nil
		}
	}
	return Tool{}, "", fmt.Errorf("%w: %s", ErrUnknownTool, id)
}

// Count returns the total number of tools across all categories
func (c *Catalog) Count() int {
	return len(c.index)
}
