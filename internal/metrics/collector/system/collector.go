// Package system samples processes, aggregate CPU and memory, and disk
// throughput from a SystemProbe.
package system

import (
	"context"
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
	"horizonx-top/internal/pkg"
)

const unknownCPUModel = "Unknown"

type Option func(*Collector)

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

func NewCollector(probe domain.SystemProbe, log logger.Logger, opts ...Option) *Collector {
	c := &Collector{
		probe: probe,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seed takes the first disk reading so the first published rate is measured
// against a real prior sample.
func (c *Collector) Seed(ctx context.Context) error {
	if err := c.probe.Refresh(ctx); err != nil {
		return err
	}

	read, write := diskTotals(c.probe.Processes())
	c.baseline = diskBaseline{read: read, write: write, at: c.now(), seeded: true}

	c.log.Debug("system collector seeded", "disk_read", read, "disk_write", write)
	return nil
}

func (c *Collector) Collect(ctx context.Context) (SystemSnapshot, error) {
	if err := c.probe.Refresh(ctx); err != nil {
		return SystemSnapshot{}, err
	}

	now := c.now()
	procs := c.probe.Processes()
	read, write := diskTotals(procs)

	prev := c.baseline
	if !prev.seeded {
		prev = diskBaseline{read: read, write: write, at: now}
	}

	elapsed := now.Sub(prev.at).Seconds()
	readRate := pkg.Rate(prev.read, read, elapsed)
	writeRate := pkg.Rate(prev.write, write, elapsed)

	c.baseline = diskBaseline{read: read, write: write, at: now, seeded: true}

	records := make([]domain.ProcessRecord, 0, len(procs))
	for _, p := range procs {
		records = append(records, domain.ProcessRecord{
			Name:           p.Name,
			PID:            p.PID,
			CPUPercent:     p.CPUPercent,
			MemoryBytes:    p.MemoryBytes,
			Status:         p.Status,
			RunTimeSeconds: p.RunTimeSeconds,
		})
	}

	mem := c.probe.Memory()

	return SystemSnapshot{
		Processes:            records,
		CPUModel:             cpuModel(c.probe.CPUs()),
		TotalCPUPercent:      c.probe.GlobalCPUUsage(),
		TotalMemoryBytes:     mem.TotalBytes,
		UsedMemoryBytes:      mem.UsedBytes,
		AvailableMemoryBytes: mem.AvailableBytes,
		TotalSwapBytes:       mem.SwapTotalBytes,
		UsedSwapBytes:        mem.SwapUsedBytes,
		DiskReadBytesPerSec:  readRate,
		DiskWriteBytesPerSec: writeRate,
		CapturedAt:           now,
	}, nil
}

func diskTotals(procs []domain.ProcessRaw) (read, write uint64) {
	for _, p := range procs {
		read += p.DiskReadBytes
		write += p.DiskWriteBytes
	}
	return read, write
}

func cpuModel(cpus []domain.CPUInfo) string {
	if len(cpus) == 0 || cpus[0].Brand == "" {
		return unknownCPUModel
	}
	return cpus[0].Brand
}
