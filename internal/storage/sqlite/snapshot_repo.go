package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"horizonx-top/internal/domain"
)

const KindView = "view"

var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotRepository stores one row per kind. Every save replaces the row,
// so the table never grows into a history.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) SaveView(ctx context.Context, v domain.View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}

	capturedAt := v.System.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	query := `
	INSERT INTO snapshots (kind, data, captured_at) VALUES (?, ?, ?)
	ON CONFLICT(kind) DO UPDATE SET data = excluded.data, captured_at = excluded.captured_at
	`
	if _, err := r.db.ExecContext(ctx, query, KindView, string(data), capturedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) LatestView(ctx context.Context) (domain.View, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE kind = ?", KindView).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.View{}, ErrNoSnapshot
	}
	if err != nil {
		return domain.View{}, fmt.Errorf("failed to load view: %w", err)
	}

	var v domain.View
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return domain.View{}, fmt.Errorf("failed to decode view: %w", err)
	}
	return v, nil
}
