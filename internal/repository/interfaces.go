package repository

import (
	"context"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// SnapshotRepo persists fetched snapshot payloads so the dashboard can fall
// back to the last good document when the endpoint is unreachable.
type SnapshotRepo interface {
	// Save stores a revision.
	Save(ctx context.Context, rev *domain.SnapshotRevision) error

	// Latest returns the most recently fetched revision, or nil when the
	// cache is empty.
	Latest(ctx context.Context) (*domain.SnapshotRevision, error)

	// Prune deletes all but the newest keep revisions.
	Prune(ctx context.Context, keep int) error
}
