package session

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/tterrag131/reimagined-disco/internal/domain"
	"github.com/tterrag131/reimagined-disco/internal/planner"
	"github.com/tterrag131/reimagined-disco/internal/repository"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

// ErrRefreshInFlight reports that a refresh was requested while another one
// was still running. The caller simply drops the trigger.
var ErrRefreshInFlight = errors.New("snapshot refresh already in flight")

// cacheKeep bounds how many cached revisions survive a prune after each
// successful fetch.
const cacheKeep = 24

// Source identifies where the active snapshot came from.
type Source string

const (
	// SourceLive means the snapshot was fetched from the endpoint.
	SourceLive Source = "live"
	// SourceCache means the endpoint was unreachable and the last good
	// cached document is being shown.
	SourceCache Source = "cache"
	// SourceDefault means no live or cached document was available.
	SourceDefault Source = "default"
)

// RefreshOutcome describes the result of one refresh pass. FetchErr is set
// whenever the live fetch failed, even if a cached fallback was applied.
type RefreshOutcome struct {
	Source    Source
	Candidate string
	FetchedAt time.Time
	FetchErr  error
}

// Fetcher retrieves the freshest decodable snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*snapshot.Result, error)
}

// Session owns the dashboard's mutable state: the active snapshot, the plan
// store, the target throughput rate, and the auto-balance trigger. All
// planning queries read a consistent view under the session lock; the
// actual math stays in the pure planner functions.
type Session struct {
	mu sync.Mutex

	snap    *domain.Snapshot
	anchors planner.Anchors
	outcome RefreshOutcome

	store      *Store
	targetRate float64

	balanceRequested bool
	refreshing       bool

	fetcher Fetcher
	cache   repository.SnapshotRepo
	clock   planner.Clock
}

// New creates a session seeded with the placeholder snapshot. cache may be
// nil when no fallback store is configured; clock nil defaults to time.Now.
func New(fetcher Fetcher, cache repository.SnapshotRepo, clock planner.Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	snap := snapshot.Default()
	return &Session{
		snap:       snap,
		anchors:    planner.ResolveAnchors(snap.CurrentDate),
		outcome:    RefreshOutcome{Source: SourceDefault},
		store:      NewStore(),
		targetRate: domain.DefaultRate,
		fetcher:    fetcher,
		cache:      cache,
		clock:      clock,
	}
}

// Refresh runs one fetch pass and applies the result. Overlapping calls are
// rejected with ErrRefreshInFlight so a slow fetch can never stack. On
// fetch failure the last good cached document is applied instead; with no
// cache hit the placeholder stays so the dashboard always renders.
func (s *Session) Refresh(ctx context.Context) (RefreshOutcome, error) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return RefreshOutcome{}, ErrRefreshInFlight
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	res, err := s.fetcher.Fetch(ctx)
	if err == nil {
		s.persist(ctx, res)
		outcome := RefreshOutcome{
			Source:    SourceLive,
			Candidate: res.Candidate,
			FetchedAt: s.clock().UTC(),
		}
		s.apply(res.Snapshot, outcome)
		return outcome, nil
	}

	if outcome, ok := s.applyCached(ctx, err); ok {
		return outcome, nil
	}

	outcome := RefreshOutcome{Source: SourceDefault, FetchErr: err}
	s.apply(snapshot.Default(), outcome)
	return outcome, nil
}

// Refreshing reports whether a refresh pass is currently running.
func (s *Session) Refreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

func (s *Session) persist(ctx context.Context, res *snapshot.Result) {
	if s.cache == nil {
		return
	}
	rev := &domain.SnapshotRevision{
		SnapshotHour: res.Candidate,
		Payload:      res.Payload,
	}
	// Cache writes are best effort; a failed save never blocks the
	// refresh that produced a good live snapshot.
	if err := s.cache.Save(ctx, rev); err == nil {
		_ = s.cache.Prune(ctx, cacheKeep)
	}
}

func (s *Session) applyCached(ctx context.Context, fetchErr error) (RefreshOutcome, bool) {
	if s.cache == nil {
		return RefreshOutcome{}, false
	}
	rev, err := s.cache.Latest(ctx)
	if err != nil || rev == nil {
		return RefreshOutcome{}, false
	}
	snap, err := snapshot.Decode(rev.Payload)
	if err != nil {
		return RefreshOutcome{}, false
	}
	outcome := RefreshOutcome{
		Source:    SourceCache,
		Candidate: rev.SnapshotHour,
		FetchedAt: rev.FetchedAt,
		FetchErr:  fetchErr,
	}
	s.apply(snap, outcome)
	return outcome, true
}

func (s *Session) apply(snap *domain.Snapshot, outcome RefreshOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.anchors = planner.ResolveAnchors(snap.CurrentDate)
	s.outcome = outcome
}

// Snapshot returns the active snapshot. Never nil: before the first refresh
// it is the placeholder document.
func (s *Session) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Anchors returns the date anchors resolved from the active snapshot.
func (s *Session) Anchors() planner.Anchors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchors
}

// LastOutcome returns the outcome of the most recent refresh.
func (s *Session) LastOutcome() RefreshOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Plans exposes the plan input store.
func (s *Session) Plans() *Store {
	return s.store
}

// TargetRate returns the target throughput rate used for required-hours
// math and auto-balance.
func (s *Session) TargetRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetRate
}

// SetTargetRate replaces the target rate. Non-positive or non-finite input
// falls back to the default rate.
func (s *Session) SetTargetRate(rate float64) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = domain.DefaultRate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetRate = rate
}

// RequestAutoBalance arms the one-shot auto-balance trigger. The solve runs
// on the next ApplyAutoBalance call and the trigger clears.
func (s *Session) RequestAutoBalance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceRequested = true
}

// ApplyAutoBalance runs the staffing solve if the trigger is armed, writes
// the result into the plan store, and disarms the trigger. It reports
// whether a solve actually ran, so an unarmed call is a no-op.
func (s *Session) ApplyAutoBalance() bool {
	s.mu.Lock()
	if !s.balanceRequested {
		s.mu.Unlock()
		return false
	}
	s.balanceRequested = false
	snap := s.snap
	anchors := s.anchors
	rate := s.targetRate
	s.mu.Unlock()

	balanced := planner.AutoBalance(domain.Shifts(), snap.Extended, anchors, rate, s.store.All())
	s.store.ReplaceAll(balanced)
	return true
}

// QuarterVolume derives the expected volume for one quarter from the active
// snapshot's extended predictions.
func (s *Session) QuarterVolume(q domain.QuarterDefinition) float64 {
	s.mu.Lock()
	snap, anchors := s.snap, s.anchors
	s.mu.Unlock()
	return planner.QuarterVolume(q, snap.Extended, anchors)
}

// ShiftPlan aggregates a shift's quarters against the current plan inputs.
func (s *Session) ShiftPlan(shift domain.ShiftDefinition) domain.ShiftAggregate {
	s.mu.Lock()
	snap, anchors, rate := s.snap, s.anchors, s.targetRate
	s.mu.Unlock()
	return planner.AggregateShift(shift, snap.Extended, anchors, s.store.All(), rate)
}

// Trajectory projects the backlog through every shift that has not yet
// started, seeded from the ledger's current backlog.
func (s *Session) Trajectory() []domain.TrajectoryStep {
	s.mu.Lock()
	snap, anchors := s.snap, s.anchors
	s.mu.Unlock()
	upcoming := planner.UpcomingShifts(domain.Shifts(), anchors, s.clock())
	return planner.ProjectBacklog(snap.Ledger.Backlog(), upcoming, snap.Extended, anchors, s.store.All())
}
