package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileCategory is one entry of the catalog file
type fileCategory struct {
	Name  string `yaml:"name"`
	Tools []Tool `yaml:"tools"`
}

// file is the on-disk layout of tools.yaml
type file struct {
	Categories []fileCategory `yaml:"categories"`
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	categories := make([]Category, 0, len(f.Categories))
	tools := make(map[Category][]Tool, len(f.Categories))
	for _, fc := range f.Categories {
		cat := Category(fc.Name)
		categories = append(categories, cat)
		tools[cat] = fc.Tools
	}

	return New(categories, tools)
}

// Find searches the usual locations for tools.yaml and returns the first hit
func Find(basePath string) (string, bool) {
	if basePath == "" {
		basePath = "."
	}

	possiblePaths := []string{
		filepath.Join(basePath, "configs", "tools.yaml"),
		filepath.Join(basePath, "tools.yaml"),
		filepath.Join(basePath, "..", "configs", "tools.yaml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(home, ".nexus", "tools.yaml"))
	}

	for _, path := range possiblePaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
