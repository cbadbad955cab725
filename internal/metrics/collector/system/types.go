package system

import (
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

type Collector struct {
	probe domain.SystemProbe
	log   logger.Logger
	now   func() time.Time

	baseline diskBaseline
}

// diskBaseline holds the last summed disk counters. It belongs to one
// collector and is never shared with the network side.
type diskBaseline struct {
	read   uint64
	write  uint64
	at     time.Time
	seeded bool
}

type SystemSnapshot = domain.SystemSnapshot
