package executor

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/HIESENBERG503/AIO-BST/internal/panel"
)

// StartedEvent is reported when an execution begins
type StartedEvent struct {
	ExecutionID string
	ToolID      string
	Params      map[string]string
	StartedAt   time.Time
}

// FinishedEvent is reported once per execution, successful or not
type FinishedEvent struct {
	Result Result
	Err    error
}

// ReportFunc receives execution events. In the TUI this is the program's
// Send, so it is never called from the goroutine that dispatched.
type ReportFunc func(msg any)

// DispatcherOptions configure a Dispatcher
type DispatcherOptions struct {
	Timeout       time.Duration // per execution, zero for none
	MaxConcurrent int           // zero for unlimited
	Logger        *log.Logger
}

// Dispatcher turns confirmed panel runs into background executions
type Dispatcher struct {
	exec    Executor
	timeout time.Duration
	slots   chan struct{}
	logger  *log.Logger

	reportMu sync.RWMutex
	report   ReportFunc

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Int64
}

// NewDispatcher creates a dispatcher over exec. report may be set later with
// SetReporter.
func NewDispatcher(exec Executor, report ReportFunc, opts DispatcherOptions) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		exec:    exec,
		timeout: opts.Timeout,
		logger:  logger,
		report:  report,
		ctx:     ctx,
		cancel:  cancel,
	}
	if opts.MaxConcurrent > 0 {
		d.slots = make(chan struct{}, opts.MaxConcurrent)
	}
	return d
}

// SetReporter replaces the event sink
func (d *Dispatcher) SetReporter(report ReportFunc) {
	d.reportMu.Lock()
	d.report = report
	d.reportMu.Unlock()
}

// Dispatch has the panel.ExecuteFunc signature and never blocks
func (d *Dispatcher) Dispatch(toolID string, params panel.Params) {
	d.Submit(Request{ToolID: toolID, Params: params.Map()})
}

var _ panel.ExecuteFunc = (*Dispatcher)(nil).Dispatch

// Submit starts req in the background and returns its execution ID. After
// Close it returns "" and runs nothing.
func (d *Dispatcher) Submit(req Request) string {
	if d.ctx.Err() != nil {
		d.logger.Warn("Dispatcher closed, dropping execution", "tool", req.ToolID)
		return ""
	}
	if req.ExecutionID == "" {
		req.ExecutionID = uuid.NewString()
	}

	d.running.Add(1)
	d.wg.Add(1)
	go d.run(req)
	return req.ExecutionID
}

func (d *Dispatcher) run(req Request) {
	defer d.wg.Done()
	defer d.running.Add(-1)

	if d.slots != nil {
		select {
		case d.slots <- struct{}{}:
			defer func() { <-d.slots }()
		case <-d.ctx.Done():
			d.send(FinishedEvent{
				Result: Result{ExecutionID: req.ExecutionID, ToolID: req.ToolID, Params: req.Params, Status: StatusError},
				Err:    d.ctx.Err(),
			})
			return
		}
	}

	ctx := d.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	d.logger.Debug("Starting execution", "id", req.ExecutionID, "tool", req.ToolID, "target", req.Params["target"])
	d.send(StartedEvent{
		ExecutionID: req.ExecutionID,
		ToolID:      req.ToolID,
		Params:      req.Params,
		StartedAt:   time.Now(),
	})

	result, err := d.exec.Execute(ctx, req)
	if result.ExecutionID == "" {
		result.ExecutionID = req.ExecutionID
		result.ToolID = req.ToolID
		result.Params = req.Params
	}
	if err != nil {
		result.Status = StatusError
		d.logger.Error("Execution failed", "id", req.ExecutionID, "tool", req.ToolID, "err", err)
	} else {
		d.logger.Info("Execution finished", "id", req.ExecutionID, "tool", req.ToolID, "duration", result.Duration)
	}

	d.send(FinishedEvent{Result: result, Err: err})
}

func (d *Dispatcher) send(msg any) {
	d.reportMu.RLock()
	report := d.report
	d.reportMu.RUnlock()
	if report != nil {
		report(msg)
	}
}

// Running is the number of executions not yet finished
func (d *Dispatcher) Running() int {
	return int(d.running.Load())
}

// Wait blocks until every submitted execution has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close cancels in-flight executions and waits for them to report
func (d *Dispatcher) Close() {
	d.cancel()
	d.Wait()
}
