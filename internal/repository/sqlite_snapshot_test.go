package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tterrag131/reimagined-disco/internal/db"
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

func testRepo(t *testing.T) *SQLiteSnapshotRepo {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteSnapshotRepo(database)
}

func TestSnapshotRepo_SaveAndLatest(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rev := &domain.SnapshotRevision{
		SnapshotHour: "2025-03-15_14",
		FetchedAt:    time.Date(2025, 3, 15, 14, 20, 0, 0, time.UTC),
		Payload:      []byte(`{"time":"2025-03-15 14:05:00"}`),
	}
	require.NoError(t, repo.Save(ctx, rev))
	assert.NotEmpty(t, rev.ID, "Save should assign an ID")

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rev.ID, got.ID)
	assert.Equal(t, "2025-03-15_14", got.SnapshotHour)
	assert.Equal(t, rev.FetchedAt, got.FetchedAt)
	assert.Equal(t, rev.Payload, got.Payload)
}

func TestSnapshotRepo_LatestEmptyCache(t *testing.T) {
	repo := testRepo(t)
	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotRepo_LatestPicksNewest(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i, hour := range []string{"2025-03-15_12", "2025-03-15_14", "2025-03-15_13"} {
		require.NoError(t, repo.Save(ctx, &domain.SnapshotRevision{
			SnapshotHour: hour,
			FetchedAt:    time.Date(2025, 3, 15, 12+i%3, 30, 0, 0, time.UTC),
			Payload:      []byte("{}"),
		}))
	}

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-15_13", got.SnapshotHour) // fetched at 14:30
}

func TestSnapshotRepo_Prune(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &domain.SnapshotRevision{
			SnapshotHour: base.Add(time.Duration(i) * time.Hour).Format("2006-01-02_15"),
			FetchedAt:    base.Add(time.Duration(i) * time.Hour),
			Payload:      []byte("{}"),
		}))
	}

	require.NoError(t, repo.Prune(ctx, 2))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-15_04", got.SnapshotHour)

	require.NoError(t, repo.Prune(ctx, 0))
	got, err = repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
