package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"horizonx-top/internal/config"
	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
	"horizonx-top/internal/storage/sqlite"
)

type fakeSystem struct{}

func (fakeSystem) Refresh(context.Context) error { return nil }
func (fakeSystem) CPUs() []domain.CPUInfo        { return []domain.CPUInfo{{Brand: "Test CPU"}} }
func (fakeSystem) GlobalCPUUsage() float64       { return 5 }
func (fakeSystem) Memory() domain.MemoryStats {
	return domain.MemoryStats{TotalBytes: 100, UsedBytes: 40}
}

func (fakeSystem) Processes() []domain.ProcessRaw {
	return []domain.ProcessRaw{{PID: 1, Name: "init"}}
}

func (fakeSystem) Process(context.Context, int32) (domain.ProcessRaw, bool) {
	return domain.ProcessRaw{}, false
}

func (fakeSystem) Kill(context.Context, int32, syscall.Signal) bool { return false }

var errRefresh = errors.New("proc unavailable")

type failingSystem struct{ fakeSystem }

func (failingSystem) Refresh(context.Context) error { return errRefresh }

type fakeNetwork struct{}

func (fakeNetwork) Refresh(context.Context) error { return nil }

func (fakeNetwork) Networks() []domain.InterfaceRaw {
	return []domain.InterfaceRaw{{Name: "eth0"}, {Name: "docker0"}}
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		Mode:            mode,
		ProcessInterval: 10 * time.Millisecond,
		NetworkInterval: 10 * time.Millisecond,
		ProcessLimit:    30,
		NetworkLimit:    6,
	}
}

func testApp(mode string) (*App, *bytes.Buffer) {
	a := New(testConfig(mode), logger.Nop(), Probes{
		System:  fakeSystem{},
		Network: fakeNetwork{},
		Query:   fakeSystem{},
	})
	out := &bytes.Buffer{}
	a.out = out
	return a, out
}

func TestRunSnapshot(t *testing.T) {
	a, out := testApp(config.ModeSnapshot)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var v domain.View
	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("output is not a view: %v\n%s", err, out)
	}
	if v.System.CPUModel != "Test CPU" || len(v.System.Processes) != 1 {
		t.Errorf("system = %+v", v.System)
	}
	if len(v.Network.Interfaces) != 1 || v.Network.Interfaces[0].Name != "eth0" {
		t.Errorf("network = %+v", v.Network)
	}
}

func TestRunStreamStopsOnCancel(t *testing.T) {
	a, _ := testApp(config.ModeStream)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream mode did not stop")
	}

	if got := a.state.Read().System.CPUModel; got != "Test CPU" {
		t.Errorf("state not published, cpu model = %q", got)
	}
}

func TestRunSnapshotFallsBackToStoredView(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "horizonx.db")

	db, err := sqlite.NewSqliteDB(dbPath, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	stored := domain.View{System: domain.SystemSnapshot{
		CPUModel:   "Stored CPU",
		CapturedAt: time.Unix(1700000000, 0).UTC(),
	}}
	if err := sqlite.NewSnapshotRepository(db).SaveView(context.Background(), stored); err != nil {
		t.Fatal(err)
	}
	db.Close()

	cfg := testConfig(config.ModeSnapshot)
	cfg.DBPath = dbPath
	a := New(cfg, logger.Nop(), Probes{
		System:  failingSystem{},
		Network: fakeNetwork{},
		Query:   fakeSystem{},
	})
	out := &bytes.Buffer{}
	a.out = out

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var v domain.View
	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("output is not a view: %v\n%s", err, out)
	}
	if v.System.CPUModel != "Stored CPU" {
		t.Errorf("cpu model = %q, want the stored view", v.System.CPUModel)
	}
}

func TestRunSnapshotWithoutStoreReturnsError(t *testing.T) {
	a := New(testConfig(config.ModeSnapshot), logger.Nop(), Probes{
		System:  failingSystem{},
		Network: fakeNetwork{},
		Query:   fakeSystem{},
	})
	a.out = &bytes.Buffer{}

	if err := a.Run(context.Background()); !errors.Is(err, errRefresh) {
		t.Errorf("Run() error = %v, want %v", err, errRefresh)
	}
}
