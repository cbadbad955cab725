package pkg

import (
	"fmt"
	"math"
)

const (
	KiB = 1024.0
	MiB = KiB * 1024
	GiB = MiB * 1024
	TiB = GiB * 1024
)

// FormatBytes renders a byte count with one decimal in the largest unit that
// fits, up to TB. Counts below 1 KB are printed as whole bytes.
func FormatBytes(b uint64) string {
	bf := float64(b)

	switch {
	case bf >= TiB:
		return fmt.Sprintf("%.1f TB", bf/TiB)
	case bf >= GiB:
		return fmt.Sprintf("%.1f GB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.1f MB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.1f KB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// FormatRate renders bytes per second. NaN, infinite and negative rates
// render as "0 B/s".
func FormatRate(bps float64) string {
	if math.IsNaN(bps) || math.IsInf(bps, 0) || bps <= 0 {
		return "0 B/s"
	}

	if bps >= math.MaxUint64 {
		return FormatBytes(math.MaxUint64) + "/s"
	}

	return FormatBytes(uint64(bps)) + "/s"
}

func Percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
