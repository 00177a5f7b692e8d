package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/HIESENBERG503/AIO-BST/internal/executor"
	"github.com/HIESENBERG503/AIO-BST/internal/panel"
)

func newExecCmd() *cobra.Command {
	var (
		target string
		port   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "exec <tool>",
		Short: "Run one simulated tool execution and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			l, closer, err := cliLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			if port == "" {
				port = cfg.UI.DefaultPort
			}
			if port == "" {
				port = panel.DefaultPort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if cfg.Executor.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Executor.Timeout)
				defer cancel()
			}

			sim := executor.NewSimulator(cat, executor.SimulatorOptions{
				MinDelay: cfg.Executor.MinDelay,
				MaxDelay: cfg.Executor.MaxDelay,
			})
			req := executor.Request{
				ExecutionID: uuid.NewString(),
				ToolID:      args[0],
				Params:      panel.Params{Target: target, Port: port}.Map(),
			}

			l.Debug("executing", "tool", req.ToolID, "target", target, "port", port)
			return runOnce(ctx, cmd.OutOrStdout(), sim, req, asJSON)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "target host or address")
	cmd.Flags().StringVarP(&port, "port", "p", "", "target port (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

// runOnce executes req and writes the result to w
func runOnce(ctx context.Context, w io.Writer, ex executor.Executor, req executor.Request, asJSON bool) error {
	result, err := ex.Execute(ctx, req)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(w, "$ %s %s:%s\n", req.ToolID, req.Params[string(panel.FieldTarget)], req.Params[string(panel.FieldPort)])
	fmt.Fprintln(w, result.Output)
	fmt.Fprintf(w, "[%s in %s]\n", result.Status, result.Duration)
	return nil
}
