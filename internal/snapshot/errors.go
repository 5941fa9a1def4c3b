package snapshot

import "errors"

var (
	// ErrLookbackExhausted indicates every snapshot candidate within the
	// lookback window was tried without success.
	ErrLookbackExhausted = errors.New("snapshot lookback exhausted")

	// ErrSnapshotUnavailable indicates the snapshot endpoint is unreachable.
	ErrSnapshotUnavailable = errors.New("snapshot endpoint unavailable")
)
