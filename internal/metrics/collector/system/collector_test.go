package system

import (
	"context"
	"errors"
	"math"
	"syscall"
	"testing"
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

type fakeProbe struct {
	procs      []domain.ProcessRaw
	cpus       []domain.CPUInfo
	refreshErr error
	refreshes  int
}

func (f *fakeProbe) Refresh(context.Context) error {
	f.refreshes++
	return f.refreshErr
}

func (f *fakeProbe) CPUs() []domain.CPUInfo         { return f.cpus }
func (f *fakeProbe) GlobalCPUUsage() float64        { return 12.5 }
func (f *fakeProbe) Processes() []domain.ProcessRaw { return f.procs }
func (f *fakeProbe) Memory() domain.MemoryStats {
	return domain.MemoryStats{TotalBytes: 8 << 30, UsedBytes: 2 << 30, AvailableBytes: 6 << 30}
}

func (f *fakeProbe) Process(context.Context, int32) (domain.ProcessRaw, bool) {
	return domain.ProcessRaw{}, false
}

func (f *fakeProbe) Kill(context.Context, int32, syscall.Signal) bool { return false }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func diskRead(total uint64) []domain.ProcessRaw {
	return []domain.ProcessRaw{
		{PID: 1, Name: "init", DiskReadBytes: total / 2},
		{PID: 2, Name: "worker", DiskReadBytes: total - total/2},
	}
}

func TestCollectDiskRate(t *testing.T) {
	probe := &fakeProbe{procs: diskRead(1000)}
	clock := &fakeClock{t: time.Unix(100, 0)}
	c := NewCollector(probe, logger.Nop(), WithClock(clock.now))

	if err := c.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	probe.procs = diskRead(1500)
	clock.t = clock.t.Add(time.Second)

	snap, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if math.Abs(snap.DiskReadBytesPerSec-500) > 1e-9 {
		t.Errorf("DiskReadBytesPerSec = %v, want 500", snap.DiskReadBytesPerSec)
	}

	// counter went backwards
	probe.procs = diskRead(1400)
	clock.t = clock.t.Add(time.Second)

	snap, err = c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if snap.DiskReadBytesPerSec != 0 {
		t.Errorf("DiskReadBytesPerSec after reset = %v, want 0", snap.DiskReadBytesPerSec)
	}
}

func TestCollectKeepsProbeOrder(t *testing.T) {
	probe := &fakeProbe{
		procs: []domain.ProcessRaw{
			{PID: 30, Name: "c", CPUPercent: 1},
			{PID: 10, Name: "a", CPUPercent: 90},
			{PID: 20, Name: "b", CPUPercent: 50},
		},
		cpus: []domain.CPUInfo{{Brand: "Test CPU"}},
	}
	c := NewCollector(probe, logger.Nop())

	snap, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []int32{30, 10, 20}
	for i, p := range snap.Processes {
		if p.PID != want[i] {
			t.Fatalf("Processes[%d].PID = %d, want %d", i, p.PID, want[i])
		}
	}
	if snap.CPUModel != "Test CPU" {
		t.Errorf("CPUModel = %q", snap.CPUModel)
	}
	if snap.TotalMemoryBytes != 8<<30 || snap.TotalCPUPercent != 12.5 {
		t.Errorf("aggregates not copied from probe: %+v", snap)
	}
}

func TestCollectUnseededPublishesZeroRate(t *testing.T) {
	probe := &fakeProbe{procs: diskRead(5000)}
	c := NewCollector(probe, logger.Nop())

	snap, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if snap.DiskReadBytesPerSec != 0 || snap.DiskWriteBytesPerSec != 0 {
		t.Errorf("first rates = %v/%v, want 0/0", snap.DiskReadBytesPerSec, snap.DiskWriteBytesPerSec)
	}
	if snap.CPUModel != unknownCPUModel {
		t.Errorf("CPUModel = %q, want %q", snap.CPUModel, unknownCPUModel)
	}
}

func TestCollectRefreshErrorKeepsBaseline(t *testing.T) {
	probe := &fakeProbe{procs: diskRead(1000)}
	clock := &fakeClock{t: time.Unix(100, 0)}
	c := NewCollector(probe, logger.Nop(), WithClock(clock.now))

	if err := c.Seed(context.Background()); err != nil {
		t.Fatal(err)
	}

	probe.refreshErr = errors.New("probe down")
	clock.t = clock.t.Add(time.Second)
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("Collect() error = nil, want probe error")
	}

	probe.refreshErr = nil
	probe.procs = diskRead(3000)
	clock.t = clock.t.Add(time.Second)

	snap, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// 2000 bytes across the 2s since the seed
	if math.Abs(snap.DiskReadBytesPerSec-1000) > 1e-9 {
		t.Errorf("DiskReadBytesPerSec = %v, want 1000", snap.DiskReadBytesPerSec)
	}
}
