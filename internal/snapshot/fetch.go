package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// hourFolderLayout names the hourly snapshot folder the pipeline uploads to.
const hourFolderLayout = "2006-01-02_15"

// Fetcher retrieves the latest available snapshot. The pipeline publishes
// one folder per run hour, so the freshest document is found by probing the
// current hour's folder and stepping back hour by hour; the lookback bound
// guarantees the fetch terminates deterministically.
type Fetcher struct {
	cfg      Config
	http     *http.Client
	now      func() time.Time
	observer Observer
}

// NewFetcher creates a Fetcher. A nil now defaults to time.Now; a nil
// observer defaults to NoopObserver.
func NewFetcher(cfg Config, now func() time.Time, observer Observer) *Fetcher {
	if now == nil {
		now = time.Now
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Fetcher{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		now:      now,
		observer: observer,
	}
}

// Result is a successfully fetched snapshot together with its raw payload
// and the hour folder it came from. The payload is kept so callers can
// cache the document byte-for-byte.
type Result struct {
	Snapshot  *domain.Snapshot
	Payload   []byte
	Candidate string
}

// Fetch probes snapshot candidates from the current hour backward and
// returns the first one that decodes. It never retries a candidate: a miss
// steps back an hour instead. All candidates failing yields
// ErrLookbackExhausted (or ErrSnapshotUnavailable when every attempt died
// on the wire).
func (f *Fetcher) Fetch(ctx context.Context) (*Result, error) {
	hour := f.now().Truncate(time.Hour)

	attempts := f.cfg.LookbackHours + 1
	sawConnErr := false
	var lastErr error

	for i := 0; i < attempts; i++ {
		candidate := hour.Add(-time.Duration(i) * time.Hour).Format(hourFolderLayout)

		res, err := f.fetchCandidate(ctx, candidate)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnectionError(err) {
			sawConnErr = true
		}
	}

	if sawConnErr {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, lastErr)
	}
	return nil, fmt.Errorf("%w after %d candidates: %v", ErrLookbackExhausted, attempts, lastErr)
}

func (f *Fetcher) fetchCandidate(ctx context.Context, candidate string) (*Result, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(f.cfg.AttemptTimeoutMs)*time.Millisecond)
	defer cancel()

	url := fmt.Sprintf("%s/predictions/%s/VIZ.json", f.cfg.Endpoint, candidate)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		f.emit(candidate, start, 0, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("snapshot candidate %s: status %d", candidate, resp.StatusCode)
		f.emit(candidate, start, resp.StatusCode, err)
		return nil, err
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		f.emit(candidate, start, resp.StatusCode, err)
		return nil, fmt.Errorf("reading snapshot body: %w", err)
	}

	snap, err := Decode(payload)
	if err != nil {
		f.emit(candidate, start, resp.StatusCode, err)
		return nil, err
	}

	f.emit(candidate, start, resp.StatusCode, nil)
	return &Result{Snapshot: snap, Payload: payload, Candidate: candidate}, nil
}

func (f *Fetcher) emit(candidate string, start time.Time, status int, err error) {
	f.observer.OnFetchComplete(FetchEvent{
		Candidate: candidate,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Status:    status,
		ErrorCode: errorCode(err),
	})
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "MISS"
	}
}
