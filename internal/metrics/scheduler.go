// Package metrics drives the periodic samplers.
package metrics

import (
	"context"
	"fmt"
	"time"

	"horizonx-top/internal/logger"
)

// Collector produces one sample per call and owns its rate baseline.
type Collector[T any] interface {
	Seed(ctx context.Context) error
	Collect(ctx context.Context) (T, error)
}

type Scheduler[T any] struct {
	name      string
	interval  time.Duration
	log       logger.Logger
	collector Collector[T]
	paused    func() bool
	sink      func(T)
}

func NewScheduler[T any](name string, interval time.Duration, log logger.Logger, collector Collector[T], paused func() bool, sink func(T)) *Scheduler[T] {
	return &Scheduler[T]{
		name:      name,
		interval:  interval,
		log:       log,
		collector: collector,
		paused:    paused,
		sink:      sink,
	}
}

// Start seeds the collector, samples once immediately and then once per
// interval until ctx is done. Cycles that find the pause flag set are
// skipped entirely.
func (s *Scheduler[T]) Start(ctx context.Context) error {
	if err := s.collector.Seed(ctx); err != nil {
		s.log.Warn("collector seed failed", "name", s.name, "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sampler started", "name", s.name, "interval", s.interval)

	// first sample without waiting a full interval
	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.log.Info("sampler stopping...", "name", s.name)
			return nil
		}
	}
}

// tick runs one cycle. A panic inside the cycle drops that cycle only.
func (s *Scheduler[T]) tick(ctx context.Context) (published bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sampler cycle panicked", "name", s.name, "panic", fmt.Sprint(r))
			published = false
		}
	}()

	if s.paused != nil && s.paused() {
		return false
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	sample, err := s.collector.Collect(timeoutCtx)
	if err != nil {
		s.log.Error("collector", "name", s.name, "error", err)
		return false
	}

	if s.sink != nil {
		s.sink(sample)
	}
	return true
}
