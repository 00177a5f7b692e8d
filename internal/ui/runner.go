package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
	"github.com/HIESENBERG503/AIO-BST/internal/config"
	"github.com/HIESENBERG503/AIO-BST/internal/executor"
	"github.com/HIESENBERG503/AIO-BST/internal/session"
	"github.com/HIESENBERG503/AIO-BST/internal/sysstat"
	"github.com/HIESENBERG503/AIO-BST/internal/ui/model"
)

// ErrNotATerminal is returned by Run when stdout is not a TTY
var ErrNotATerminal = errors.New("stdout is not a terminal")

// IsTerminal reports whether stdout can host the TUI
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Runner manages the TUI lifecycle and the background work feeding it
type Runner struct {
	program    *tea.Program
	dispatcher *executor.Dispatcher
	watcher    *catalog.Watcher
	logger     *log.Logger
}

// NewRunner wires the simulator, dispatcher and catalog watcher to a new
// program.
func NewRunner(cfg *config.Config, cat *catalog.Catalog, logger *log.Logger) (*Runner, error) {
	sim := executor.NewSimulator(cat, executor.SimulatorOptions{
		MinDelay: cfg.Executor.MinDelay,
		MaxDelay: cfg.Executor.MaxDelay,
	})
	dispatcher := executor.NewDispatcher(sim, nil, executor.DispatcherOptions{
		Timeout:       cfg.Executor.Timeout,
		MaxConcurrent: cfg.Executor.MaxConcurrent,
		Logger:        logger,
	})

	m := model.NewAppModel(model.Options{
		Config:          cfg,
		Catalog:         cat,
		Store:           session.NewStore(),
		Logger:          logger,
		Execute:         dispatcher.Dispatch,
		Sampler:         sysstat.NewHostSampler(),
		OnCatalogReload: sim.SetCatalog,
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// events arrive from dispatcher goroutines, never from inside Update
	dispatcher.SetReporter(func(msg any) { program.Send(msg) })

	r := &Runner{
		program:    program,
		dispatcher: dispatcher,
		logger:     logger,
	}

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		w, err := catalog.NewWatcher(cfg.Catalog.Path,
			func(c *catalog.Catalog) { program.Send(model.CatalogReloadedMsg{Catalog: c}) },
			func(err error) { program.Send(model.ErrorMsg{Err: err, Context: "catalog reload"}) },
		)
		if err != nil {
			dispatcher.Close()
			return nil, fmt.Errorf("failed to watch catalog: %w", err)
		}
		r.watcher = w
	}

	return r, nil
}

// Run starts the TUI and blocks until it exits. In-flight executions are
// cancelled on the way out.
func (r *Runner) Run(ctx context.Context) error {
	if !IsTerminal() {
		return ErrNotATerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.watcher != nil {
		go r.watcher.Run(ctx)
	}
	go func() {
		<-ctx.Done()
		r.program.Quit()
	}()

	r.logger.Info("TUI starting")
	_, err := r.program.Run()
	cancel()
	if n := r.dispatcher.Running(); n > 0 {
		r.logger.Info("cancelling executions", "in_flight", n)
	}
	r.dispatcher.Close()
	r.logger.Info("TUI stopped")

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Send sends a message to the TUI
func (r *Runner) Send(msg tea.Msg) {
	if r.program != nil {
		r.program.Send(msg)
	}
}

// Quit asks the TUI to exit
func (r *Runner) Quit() {
	if r.program != nil {
		r.program.Quit()
	}
}
