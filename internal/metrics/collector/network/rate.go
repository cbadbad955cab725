package network

import (
	"slices"
	"strings"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/pkg"
)

func (c *Collector) collectMetric() NetworkSnapshot {
	now := c.now()
	elapsed := now.Sub(c.lastTime).Seconds()

	ifaces := c.probe.Networks()
	records := make([]domain.NetworkInterfaceRecord, 0, len(ifaces))
	totals := make(map[string]ifaceTotals, len(ifaces))

	for _, iface := range ifaces {
		if pkg.ContainsAny(iface.Name, ExcludedInterfaces) {
			continue
		}

		curr := ifaceTotals{rx: iface.RxTotal, tx: iface.TxTotal}

		// interfaces without history start at a zero rate
		prev, ok := c.lastTotals[iface.Name]
		if !ok || !c.seeded {
			prev = curr
		}

		records = append(records, domain.NetworkInterfaceRecord{
			Name:          iface.Name,
			RxTotalBytes:  curr.rx,
			TxTotalBytes:  curr.tx,
			RxBytesPerSec: pkg.Rate(prev.rx, curr.rx, elapsed),
			TxBytesPerSec: pkg.Rate(prev.tx, curr.tx, elapsed),
		})

		totals[iface.Name] = curr
	}

	slices.SortFunc(records, func(a, b domain.NetworkInterfaceRecord) int {
		return strings.Compare(b.Name, a.Name)
	})

	c.lastTotals = totals
	c.lastTime = now
	c.seeded = true

	return NetworkSnapshot{
		Interfaces: records,
		CapturedAt: now,
	}
}
