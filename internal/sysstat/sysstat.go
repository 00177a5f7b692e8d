// Package sysstat samples host load for the header status bar
package sysstat

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats is one reading of the host
type Stats struct {
	CPUPercent float64
	MemPercent float64
	Hostname   string
}

// String renders the compact header form, e.g. "CPU 12% MEM 48%"
func (s Stats) String() string {
	return fmt.Sprintf("CPU %.0f%% MEM %.0f%%", s.CPUPercent, s.MemPercent)
}

// Sampler reads host statistics
type Sampler interface {
	Sample(ctx context.Context) (Stats, error)
}

// HostSampler reads the local machine through gopsutil
type HostSampler struct {
	hostname string
}

// NewHostSampler resolves the hostname once; load is read on every Sample
func NewHostSampler() *HostSampler {
	s := &HostSampler{}
	if info, err := host.Info(); err == nil {
		s.hostname = info.Hostname
	}
	return s
}

// Sample reads CPU and memory usage. CPU is measured since the previous call,
// so the first reading may be zero.
func (s *HostSampler) Sample(ctx context.Context) (Stats, error) {
	stats := Stats{Hostname: s.hostname}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return stats, fmt.Errorf("reading cpu usage: %w", err)
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("reading memory usage: %w", err)
	}
	stats.MemPercent = vm.UsedPercent

	return stats, nil
}
