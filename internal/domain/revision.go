package domain

import "time"

// SnapshotRevision is one cached raw snapshot payload. Revisions preserve
// the undecoded document so a cache hit replays through the same decode
// path as a live fetch.
type SnapshotRevision struct {
	ID           string
	SnapshotHour string // pipeline folder hour, e.g. "2025-03-15_14"
	FetchedAt    time.Time
	Payload      []byte
}
