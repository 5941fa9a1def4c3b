package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

func (r *SQLiteSnapshotRepo) Save(ctx context.Context, rev *domain.SnapshotRevision) error {
	if rev.ID == "" {
		rev.ID = uuid.NewString()
	}
	if rev.FetchedAt.IsZero() {
		rev.FetchedAt = time.Now().UTC()
	}
	query := `INSERT INTO snapshot_revisions (id, snapshot_hour, fetched_at, payload)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rev.ID,
		rev.SnapshotHour,
		rev.FetchedAt.UTC().Format(time.RFC3339),
		rev.Payload,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot revision: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Latest(ctx context.Context) (*domain.SnapshotRevision, error) {
	query := `SELECT id, snapshot_hour, fetched_at, payload
		FROM snapshot_revisions ORDER BY fetched_at DESC, id LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	var rev domain.SnapshotRevision
	var fetchedAt string
	if err := row.Scan(&rev.ID, &rev.SnapshotHour, &fetchedAt, &rev.Payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading latest snapshot revision: %w", err)
	}

	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}
	rev.FetchedAt = t
	return &rev, nil
}

func (r *SQLiteSnapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM snapshot_revisions WHERE id NOT IN (
		SELECT id FROM snapshot_revisions ORDER BY fetched_at DESC, id LIMIT ?)`
	if _, err := r.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("pruning snapshot revisions: %w", err)
	}
	return nil
}
