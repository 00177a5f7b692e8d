package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/config"
	"github.com/HIESENBERG503/AIO-BST/internal/logger"
	"github.com/HIESENBERG503/AIO-BST/internal/ui"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "nexus",
		Short: "NEXUS - terminal console for the Kali tool catalog",
		Long: `NEXUS is a terminal console for browsing a catalog of security tools,
configuring a target and port, and running simulated executions grouped
into sessions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/nexus.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newToolsCmd(), newExecCmd())
	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		if _, err := logger.ParseLevel(logLevel); err != nil {
			return nil, err
		}
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog file, else the built-in set
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path := cfg.Catalog.Path
	if path == "" {
		if found, ok := catalog.Find(""); ok {
			path = found
			cfg.Catalog.Path = found
		}
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	// without a terminal there is nothing to draw on; list the catalog instead
	if !ui.IsTerminal() {
		fmt.Fprintln(cmd.ErrOrStderr(), "stdout is not a terminal; listing the catalog instead")
		return printCatalog(cmd.OutOrStdout(), cat)
	}

	l, closer, err := logger.New(cfg.Log, true)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closer.Close()
	l.Info("config loaded", "file", cfg.File, "catalog", cfg.Catalog.Path, "tools", cat.Count())

	runner, err := ui.NewRunner(cfg, cat, l)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// cliLogger logs to stderr for the non-interactive commands
func cliLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	l, closer, err := logger.New(cfg.Log, false)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}
	return l, closer, nil
}
