package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tterrag131/reimagined-disco/internal/db"
	"github.com/tterrag131/reimagined-disco/internal/domain"
	"github.com/tterrag131/reimagined-disco/internal/repository"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

// liveVIZ is a small but complete document: cumulative extended
// predictions covering the current-day morning quarters plus a ledger with
// a 500-unit backlog.
const liveVIZ = `{
  "time": "2025-03-15T14:00",
  "current_day": {"date": "2025-03-15", "network_prediction": 12000},
  "extended_predictions": {"predictions": [
    {"Time": "2025-03-15T05:00", "Predicted_Workable": 100},
    {"Time": "2025-03-15T08:00", "Predicted_Workable": 400},
    {"Time": "2025-03-15T11:00", "Predicted_Workable": 700}
  ]},
  "Ledger_Information": {
    "timePoints": ["06:00", "07:00"],
    "metrics": {
      "AvailableToPick": [100, 300],
      "Eligible": [50, 200],
      "Shipped": [0, 150]
    }
  }
}`

// stubFetcher returns a canned result or error. An optional gate channel
// makes Fetch block until released, for exercising the single-flight path.
type stubFetcher struct {
	mu    sync.Mutex
	res   *snapshot.Result
	err   error
	calls int
	gate  chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context) (*snapshot.Result, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.res, f.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func liveResult(t *testing.T) *snapshot.Result {
	t.Helper()
	snap, err := snapshot.Decode([]byte(liveVIZ))
	require.NoError(t, err)
	return &snapshot.Result{
		Snapshot:  snap,
		Payload:   []byte(liveVIZ),
		Candidate: "2025-03-15_14",
	}
}

func memRepo(t *testing.T) *repository.SQLiteSnapshotRepo {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return repository.NewSQLiteSnapshotRepo(conn)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRefresh_LiveAppliesAndCaches(t *testing.T) {
	repo := memRepo(t)
	sess := New(&stubFetcher{res: liveResult(t)}, repo,
		fixedClock(time.Date(2025, 3, 15, 14, 20, 0, 0, time.UTC)))

	outcome, err := sess.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLive, outcome.Source)
	assert.Equal(t, "2025-03-15_14", outcome.Candidate)

	assert.Equal(t, "2025-03-15", sess.Snapshot().CurrentDate)
	assert.Equal(t, "2025-03-16", sess.Anchors().Date(domain.DayNext))

	rev, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rev)
	assert.Equal(t, "2025-03-15_14", rev.SnapshotHour)
}

func TestRefresh_FallsBackToCachedDocument(t *testing.T) {
	repo := memRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &domain.SnapshotRevision{
		SnapshotHour: "2025-03-15_12",
		Payload:      []byte(liveVIZ),
	}))

	sess := New(&stubFetcher{err: snapshot.ErrLookbackExhausted}, repo, nil)
	outcome, err := sess.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, outcome.Source)
	assert.Equal(t, "2025-03-15_12", outcome.Candidate)
	assert.ErrorIs(t, outcome.FetchErr, snapshot.ErrLookbackExhausted)

	// The stale document still drives the whole dashboard.
	assert.Equal(t, "2025-03-15", sess.Snapshot().CurrentDate)
}

func TestRefresh_DefaultWhenNothingAvailable(t *testing.T) {
	sess := New(&stubFetcher{err: snapshot.ErrSnapshotUnavailable}, memRepo(t), nil)

	outcome, err := sess.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, outcome.Source)
	assert.ErrorIs(t, outcome.FetchErr, snapshot.ErrSnapshotUnavailable)
	assert.True(t, sess.Snapshot().Empty())
}

func TestRefresh_SingleFlight(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &stubFetcher{res: liveResult(t), gate: gate}
	sess := New(fetcher, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := sess.Refresh(context.Background())
		assert.NoError(t, err)
	}()

	// Wait for the first refresh to claim the slot.
	require.Eventually(t, sess.Refreshing, time.Second, time.Millisecond)

	_, err := sess.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshInFlight)

	close(gate)
	<-done
	assert.Equal(t, 1, fetcher.callCount())

	// A finished refresh releases the slot for the next trigger.
	_, err = sess.Refresh(context.Background())
	assert.NoError(t, err)
}

func TestSession_QuarterVolumeAndBacklog(t *testing.T) {
	sess := New(&stubFetcher{res: liveResult(t)}, nil, nil)
	_, err := sess.Refresh(context.Background())
	require.NoError(t, err)

	cd1, ok := findQuarter(t, "CD1")
	require.True(t, ok)
	assert.InDelta(t, 300.0, sess.QuarterVolume(cd1), 1e-9)

	// AvailableToPick 300 + Eligible 200, latest readings.
	assert.InDelta(t, 500.0, sess.Snapshot().Ledger.Backlog(), 1e-9)
}

func TestSession_TrajectoryWithNonUTCClock(t *testing.T) {
	// The same wall-clock instant must pick the same in-progress shift no
	// matter what zone the host clock reports.
	zone := time.FixedZone("PDT", -7*3600)
	sess := New(&stubFetcher{res: liveResult(t)}, nil,
		fixedClock(time.Date(2025, 3, 15, 14, 20, 0, 0, zone)))
	_, err := sess.Refresh(context.Background())
	require.NoError(t, err)

	steps := sess.Trajectory()
	require.NotEmpty(t, steps)
	// 14:20 is inside Current Day, so the projection opens with Current
	// Night and carries the ledger backlog in.
	assert.Equal(t, "Current Night", steps[0].Shift)
	assert.InDelta(t, 500.0, steps[0].StartBacklog, 1e-9)
}

func TestSession_ShiftPlanUsesStoredInputs(t *testing.T) {
	sess := New(&stubFetcher{res: liveResult(t)}, nil, nil)
	_, err := sess.Refresh(context.Background())
	require.NoError(t, err)

	sess.Plans().SetPlan("CD1", domain.QuarterPlan{Hours: 2, Rate: 100})
	shift, ok := domain.ShiftByName("Current Day")
	require.True(t, ok)

	agg := sess.ShiftPlan(shift)
	assert.InDelta(t, 2.0, agg.PlannedHours, 1e-9)
	assert.InDelta(t, 200.0, agg.PlannedCapacity, 1e-9)
	// CD1 300 + CD2 300; later quarters have no series coverage.
	assert.InDelta(t, 600.0, agg.ExpectedVolume, 1e-9)
}

func TestSession_AutoBalanceOneShot(t *testing.T) {
	sess := New(&stubFetcher{res: liveResult(t)}, nil, nil)
	_, err := sess.Refresh(context.Background())
	require.NoError(t, err)
	sess.SetTargetRate(250)

	// Unarmed trigger is a no-op.
	assert.False(t, sess.ApplyAutoBalance())

	sess.RequestAutoBalance()
	assert.True(t, sess.ApplyAutoBalance())
	// The trigger clears once applied.
	assert.False(t, sess.ApplyAutoBalance())

	// CD1 expects 300 units at rate 250: 1.2 hours.
	assert.InDelta(t, 1.2, sess.Plans().Plan("CD1").Hours, 1e-9)
}

func TestSession_TargetRateSanitized(t *testing.T) {
	sess := New(&stubFetcher{err: errors.New("offline")}, nil, nil)
	sess.SetTargetRate(-5)
	assert.Equal(t, domain.DefaultRate, sess.TargetRate())
	sess.SetTargetRate(300)
	assert.Equal(t, 300.0, sess.TargetRate())
}

func TestStore_ReplaceIsolatedFromCaller(t *testing.T) {
	store := NewStore()
	plans := map[string]domain.QuarterPlan{"CD1": {Hours: 1, Rate: 200}}
	store.ReplaceAll(plans)
	plans["CD1"] = domain.QuarterPlan{Hours: 9, Rate: 1}
	assert.InDelta(t, 1.0, store.Plan("CD1").Hours, 1e-9)

	got := store.All()
	got["CD2"] = domain.QuarterPlan{Hours: 3}
	assert.InDelta(t, 0.0, store.Plan("CD2").Hours, 1e-9)
}

func findQuarter(t *testing.T, id string) (domain.QuarterDefinition, bool) {
	t.Helper()
	for _, s := range domain.Shifts() {
		for _, q := range s.Quarters {
			if q.ID == id {
				return q, true
			}
		}
	}
	return domain.QuarterDefinition{}, false
}
