package posetrail

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/evtrack.report/internal/dataset"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trail.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigratesSchema(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO pose_trail (seed_id, t, x, y, theta) VALUES ('seed-1', 0, 1, 2, 0.5)`)
	assert.NoError(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trail.db")
	db1, err := Open(path)
	require.NoError(t, err)
	db1.Close()

	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()
}

func TestInsertRecordsAndTrailForSeed(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	records := []dataset.PoseRecord{
		{ID: "seed-a", T: 0, X: 1, Y: 2, Theta: 0},
		{ID: "seed-a", T: 1, X: 1.5, Y: 2.5, Theta: 0.1},
		{ID: "seed-b", T: 0, X: 9, Y: 9, Theta: 0},
	}
	require.NoError(t, db.InsertRecords(records))

	trail, err := db.TrailForSeed("seed-a")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, 0.0, trail[0].T)
	assert.Equal(t, 1.0, trail[1].T)
	assert.InDelta(t, 1.5, trail[1].X, 1e-9)
}

func TestInsertRecordsEmptySliceIsNoOp(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	require.NoError(t, db.InsertRecords(nil))

	trail, err := db.TrailForSeed("anything")
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestTrailForSeedReturnsEmptyForUnknownSeed(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	trail, err := db.TrailForSeed("no-such-seed")
	require.NoError(t, err)
	assert.Empty(t, trail)
}
