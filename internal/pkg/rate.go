// Package pkg holds small helpers shared by collectors and renderers.
package pkg

// MinElapsedSeconds floors the elapsed time between two samples so two reads
// landing on the same instant never divide by zero.
const MinElapsedSeconds = 1e-9

// Rate turns two cumulative counter readings into a per-second rate. A counter
// that went backwards yields 0, whether it reset or wrapped.
func Rate(prev, curr uint64, elapsedSeconds float64) float64 {
	if !(elapsedSeconds > MinElapsedSeconds) {
		elapsedSeconds = MinElapsedSeconds
	}

	if curr <= prev {
		return 0
	}

	return float64(curr-prev) / elapsedSeconds
}
