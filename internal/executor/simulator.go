package executor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HIESENBERG503/AIO-BST/internal/catalog"
)

// SimulatorOptions tune a Simulator. Zero delays finish immediately.
type SimulatorOptions struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	// Seed fixes the random source; zero seeds from the clock
	Seed int64
	// Now overrides the clock used in tool output
	Now func() time.Time
}

// Simulator produces canned tool output after a random delay
type Simulator struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog

	rngMu sync.Mutex
	rng   *rand.Rand

	minDelay time.Duration
	maxDelay time.Duration
	now      func() time.Time
}

// NewSimulator creates a simulator accepting the tools of c
func NewSimulator(c *catalog.Catalog, opts SimulatorOptions) *Simulator {
	if c == nil {
		c = catalog.Builtin()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Simulator{
		catalog:  c,
		rng:      rand.New(rand.NewSource(seed)),
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
		now:      opts.Now,
	}
}

// SetCatalog swaps the accepted tool set after a reload
func (s *Simulator) SetCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

// Execute waits out the simulated latency and returns the tool's output
func (s *Simulator) Execute(ctx context.Context, req Request) (Result, error) {
	s.mu.RLock()
	_, _, err := s.catalog.Lookup(req.ToolID)
	s.mu.RUnlock()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTool, req.ToolID)
	}

	if req.ExecutionID == "" {
		req.ExecutionID = uuid.NewString()
	}

	result := Result{
		ExecutionID: req.ExecutionID,
		ToolID:      req.ToolID,
		Params:      req.Params,
		Status:      StatusRunning,
		StartedAt:   s.now(),
	}

	start := time.Now()
	delay := s.delay()
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		result.Status = StatusError
		result.Duration = time.Since(start)
		return result, fmt.Errorf("executing %s: %w", req.ToolID, ctx.Err())
	case <-timer.C:
	}

	s.rngMu.Lock()
	result.Output = renderOutput(req, s.rng, s.now())
	s.rngMu.Unlock()

	result.Status = StatusSuccess
	result.Duration = delay
	return result, nil
}

// delay picks a latency uniformly in [minDelay, maxDelay]
func (s *Simulator) delay() time.Duration {
	spread := int64(s.maxDelay - s.minDelay)
	if spread <= 0 {
		return s.minDelay
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.minDelay + time.Duration(s.rng.Int63n(spread+1))
}
