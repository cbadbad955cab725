// Package query answers on-demand process lookups from a probe handle that
// is private to the caller and never shared with the samplers.
package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

// Service is safe for concurrent use. Calls are serialized because a probe
// handle keeps per-process state between refreshes.
type Service struct {
	mu    sync.Mutex
	probe domain.SystemProbe
	log   logger.Logger
}

func NewService(probe domain.SystemProbe, log logger.Logger) *Service {
	return &Service{probe: probe, log: log}
}

// QueryProcess refreshes the probe and returns the detail for pid as of
// this call, or domain.ErrProcessNotFound.
func (s *Service) QueryProcess(ctx context.Context, pid int32) (domain.ProcessDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.probe.Refresh(ctx); err != nil {
		return domain.ProcessDetail{}, fmt.Errorf("refreshing probe: %w", err)
	}

	raw, ok := s.probe.Process(ctx, pid)
	if !ok {
		return domain.ProcessDetail{}, fmt.Errorf("pid %d: %w", pid, domain.ErrProcessNotFound)
	}

	return domain.ProcessDetail{
		PID:                raw.PID,
		Name:               raw.Name,
		Status:             raw.Status,
		CPUPercent:         raw.CPUPercent,
		MemoryBytes:        raw.MemoryBytes,
		VirtualMemoryBytes: raw.VirtualMemoryBytes,
		RunTimeSeconds:     raw.RunTimeSeconds,
		DiskReadBytes:      raw.DiskReadBytes,
		DiskWriteBytes:     raw.DiskWriteBytes,
		Cwd:                raw.Cwd,
		Exe:                raw.Exe,
	}, nil
}

// Kill sends SIGTERM to pid.
func (s *Service) Kill(ctx context.Context, pid int32) error {
	s.mu.Lock()
	ok := s.probe.Kill(ctx, pid, syscall.SIGTERM)
	s.mu.Unlock()

	if !ok {
		s.log.Warn("signal delivery failed", "pid", pid, "signal", "SIGTERM")
		return fmt.Errorf("pid %d: %w", pid, domain.ErrKillFailed)
	}

	s.log.Info("signal sent", "pid", pid, "signal", "SIGTERM")
	return nil
}

// ParsePID accepts a positive decimal process id.
func ParsePID(raw string) (int32, error) {
	pid, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, domain.ErrInvalidPID)
	}
	return int32(pid), nil
}
