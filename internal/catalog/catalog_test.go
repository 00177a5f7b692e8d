package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	assert.Equal(t, []Category{"network", "web", "password", "exploitation", "wireless", "recon"}, c.Categories())
	assert.Equal(t, 30, c.Count())
	assert.Len(t, c.ToolsFor("network"), 6)

	tool, cat, err := c.Lookup("sqlmap")
	require.NoError(t, err)
	assert.Equal(t, Category("web"), cat)
	assert.Equal(t, "SQLmap", tool.Name)
}

func TestLookupUnknown(t *testing.T) {
	_, _, err := Builtin().Lookup("nessus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTool))
}

func TestToolsForUnknownCategory(t *testing.T) {
	c := Builtin()
	assert.Empty(t, c.ToolsFor("cloud"))
	assert.False(t, c.Has("cloud"))
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		tools      map[Category][]Tool
	}{
		{
			name:       "duplicate category",
			categories: []Category{"web", "web"},
		},
		{
			name:       "empty category",
			categories: []Category{""},
		},
		{
			name:       "tool without id",
			categories: []Category{"web"},
			tools:      map[Category][]Tool{"web": {{Name: "Nikto"}}},
		},
		{
			name:       "tool in two categories",
			categories: []Category{"web", "recon"},
			tools: map[Category][]Tool{
				"web":   {{ID: "whois"}},
				"recon": {{ID: "whois"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories, tt.tools)
			assert.Error(t, err)
		})
	}
}

func TestCategoriesIsACopy(t *testing.T) {
	c := Builtin()
	cats := c.Categories()
	cats[0] = "mutated"
	assert.Equal(t, Category("network"), c.Categories()[0])
}

func TestParse(t *testing.T) {
	data := []byte(`
categories:
  - name: network
    tools:
      - id: nmap
        name: Nmap
        description: Port scanner
  - name: cloud
`)
	c, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []Category{"network", "cloud"}, c.Categories())
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Has("cloud"))
	assert.Empty(t, c.ToolsFor("cloud"))
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("categories: []\n"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoadEmptyPathIsBuiltin(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Count(), c.Count())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	want := filepath.Join(dir, "configs", "tools.yaml")
	require.NoError(t, os.WriteFile(want, []byte("categories: []\n"), 0o644))

	got, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: web\n"), 0o644))

	reloaded := make(chan *Catalog, 1)
	w, err := NewWatcher(path, func(c *Catalog) {
		select {
		case reloaded <- c:
		default:
		}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	updated := "categories:\n  - name: recon\n    tools:\n      - id: whois\n        name: Whois\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, []Category{"recon"}, c.Categories())
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}
