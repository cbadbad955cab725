package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()

	db, err := NewSqliteDB(filepath.Join(t.TempDir(), "horizonx.db"), logger.Nop())
	if err != nil {
		t.Fatalf("NewSqliteDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSnapshotRepository(db)
}

func countRows(ctx context.Context, r *SnapshotRepository) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&n)
	return n, err
}

func TestLatestViewEmpty(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.LatestView(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LatestView() error = %v, want ErrNoSnapshot", err)
	}
}

func TestSaveViewKeepsOnlyLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, model := range []string{"first", "second", "third"} {
		v := domain.View{System: domain.SystemSnapshot{
			CPUModel:   model,
			CapturedAt: time.Unix(int64(i), 0),
			Processes:  []domain.ProcessRecord{{PID: int32(i + 1), Name: model}},
		}}
		if err := repo.SaveView(ctx, v); err != nil {
			t.Fatalf("SaveView(%s) error = %v", model, err)
		}
	}

	n, err := countRows(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}

	got, err := repo.LatestView(ctx)
	if err != nil {
		t.Fatalf("LatestView() error = %v", err)
	}
	if got.System.CPUModel != "third" || len(got.System.Processes) != 1 || got.System.Processes[0].PID != 3 {
		t.Errorf("LatestView() = %+v", got.System)
	}
}
