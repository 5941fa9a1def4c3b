package snapshot

import (
	"fmt"
	"io"
	"time"
)

// FetchEvent records metadata about a single snapshot probe.
type FetchEvent struct {
	Candidate string // snapshot hour tried, e.g. "2025-03-15_14"
	LatencyMs int64
	Success   bool
	Status    int
	ErrorCode string
}

// Observer receives events about snapshot fetches for logging.
type Observer interface {
	OnFetchComplete(event FetchEvent)
}

// LogObserver writes fetch events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnFetchComplete(event FetchEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] snapshot_fetch candidate=%s latency_ms=%d http=%d status=%s\n",
		ts, event.Candidate, event.LatencyMs, event.Status, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnFetchComplete(FetchEvent) {}
