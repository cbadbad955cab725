// Package network samples per-interface throughput.
package network

import (
	"context"
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

type Option func(*Collector)

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

func NewCollector(probe domain.NetworkProbe, log logger.Logger, opts ...Option) *Collector {
	c := &Collector{
		probe:      probe,
		log:        log,
		now:        time.Now,
		lastTotals: make(map[string]ifaceTotals),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seed records the first reading so the first published rate has a real
// prior sample.
func (c *Collector) Seed(ctx context.Context) error {
	if err := c.probe.Refresh(ctx); err != nil {
		return err
	}

	snap := c.collectMetric()
	c.log.Debug("network collector seeded", "interfaces", len(snap.Interfaces))
	return nil
}

func (c *Collector) Collect(ctx context.Context) (NetworkSnapshot, error) {
	if err := c.probe.Refresh(ctx); err != nil {
		return NetworkSnapshot{}, err
	}

	return c.collectMetric(), nil
}
