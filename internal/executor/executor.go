// Package executor runs confirmed tool invocations. Executions are simulated:
// each tool produces canned output after a random delay, the way the console
// demo has always behaved.
package executor

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownTool is returned when a request names a tool outside the catalog
var ErrUnknownTool = errors.New("unknown tool")

// Status of an execution
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Request is one tool invocation
type Request struct {
	ExecutionID string
	ToolID      string
	Params      map[string]string
}

// Param returns a parameter, or fallback when it is unset or blank
func (r Request) Param(name, fallback string) string {
	if v, ok := r.Params[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Result is the outcome of an execution
type Result struct {
	ExecutionID string            `json:"execution_id"`
	ToolID      string            `json:"tool_name"`
	Params      map[string]string `json:"parameters"`
	Status      Status            `json:"status"`
	Output      string            `json:"output"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    time.Duration     `json:"execution_time"`
}

// Executor runs a request to completion or until ctx is done
type Executor interface {
	Execute(ctx context.Context, req Request) (Result, error)
}
