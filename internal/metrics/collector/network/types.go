package network

import (
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

// ExcludedInterfaces are loopback, container and capture-driver interfaces.
// Patterns ending in "*" match as a prefix.
var ExcludedInterfaces = []string{
	"npcap",
	"nocap",
	"lo*",
	"docker*",
	"veth*",
	"br-*",
	"vir*",
}

type Collector struct {
	probe domain.NetworkProbe
	log   logger.Logger
	now   func() time.Time

	lastTotals map[string]ifaceTotals
	lastTime   time.Time
	seeded     bool
}

type ifaceTotals struct {
	rx uint64
	tx uint64
}

type NetworkSnapshot = domain.NetworkSnapshot
