package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tterrag131/reimagined-disco/internal/session"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlanCmd_PrintsShiftRollup(t *testing.T) {
	out, err := runCommand(t, testApp(t), "plan")
	require.NoError(t, err)

	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, "2025-03-15")
	assert.Contains(t, out, "Current Day")
	assert.Contains(t, out, "Third Day")
	// CD1 300 + CD2 300.
	assert.Contains(t, out, "600")
}

func TestPlanCmd_ShiftBreakdown(t *testing.T) {
	out, err := runCommand(t, testApp(t), "plan", "--shift", "Current Day")
	require.NoError(t, err)

	assert.Contains(t, out, "CURRENT DAY")
	assert.Contains(t, out, "CD1")
	assert.Contains(t, out, "06:00-09:00")
}

func TestPlanCmd_UnknownShift(t *testing.T) {
	_, err := runCommand(t, testApp(t), "plan", "--shift", "Graveyard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shift")
}

func TestPlanCmd_BalanceSolvesHours(t *testing.T) {
	app := testApp(t)
	out, err := runCommand(t, app, "plan", "--shift", "Current Day", "--balance", "--rate", "250")
	require.NoError(t, err)

	assert.Contains(t, out, "1.2h")
	assert.InDelta(t, 1.2, app.Session.Plans().Plan("CD1").Hours, 1e-9)
}

func TestBacklogCmd_PrintsTrajectory(t *testing.T) {
	out, err := runCommand(t, testApp(t), "backlog")
	require.NoError(t, err)

	assert.Contains(t, out, "Starting backlog")
	assert.Contains(t, out, "Current Night")
}

func TestFetchCmd_PrintsSummary(t *testing.T) {
	out, err := runCommand(t, testApp(t), "fetch")
	require.NoError(t, err)

	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, "2025-03-15_14")
	assert.Contains(t, out, "12,000")
}

func TestFetchCmd_WarnsOnFallback(t *testing.T) {
	fetcher := &stubFetcher{err: snapshot.ErrSnapshotUnavailable}
	app := &App{
		Session: session.New(fetcher, nil, nil),
		Config:  snapshot.Config{RefreshMinutes: 5},
	}

	out, err := runCommand(t, app, "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: live fetch failed")
	assert.Contains(t, out, "NO DATA")
}

func TestRootCmd_NonInteractiveFallsBackToPlan(t *testing.T) {
	out, err := runCommand(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Current Day")
}

func TestRefreshSession_PropagatesInFlight(t *testing.T) {
	app := testApp(t)
	// Occupy the refresh slot so command-triggered refreshes are rejected.
	gateErr := make(chan error, 1)
	blocked := &blockingFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	app.Session = session.New(blocked, nil, nil)
	go func() {
		_, err := app.Session.Refresh(context.Background())
		gateErr <- err
	}()
	<-blocked.started

	_, err := runCommand(t, app, "fetch")
	assert.True(t, errors.Is(err, session.ErrRefreshInFlight))

	close(blocked.release)
	require.NoError(t, <-gateErr)
}

type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) Fetch(ctx context.Context) (*snapshot.Result, error) {
	close(f.started)
	<-f.release
	return nil, snapshot.ErrLookbackExhausted
}
