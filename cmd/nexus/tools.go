package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
)

func newToolsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			if category != "" {
				return printCategory(cmd.OutOrStdout(), cat, catalog.Category(category))
			}
			return printCatalog(cmd.OutOrStdout(), cat)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")
	return cmd
}

// printCatalog writes every category and its tools in catalog order
func printCatalog(w io.Writer, cat *catalog.Catalog) error {
	fmt.Fprintf(w, "%d tools available\n", cat.Count())
	for _, c := range cat.Categories() {
		fmt.Fprintln(w)
		if err := printCategory(w, cat, c); err != nil {
			return err
		}
	}
	return nil
}

func printCategory(w io.Writer, cat *catalog.Catalog, c catalog.Category) error {
	if !cat.Has(c) {
		return fmt.Errorf("unknown category %q", c)
	}

	tools := cat.ToolsFor(c)
	fmt.Fprintf(w, "%s (%d)\n", strings.ToUpper(string(c)), len(tools))
	if len(tools) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, tool := range tools {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", tool.ID, tool.Name, tool.Description)
	}
	return tw.Flush()
}
