package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.json")
	return NewFileStore(path, logging.NewNopLogger()), path
}

func testRecord(parentID, childID string) *measurement.Record {
	return measurement.NewRecord(parentID, childID,
		measurement.InputParameters{Age: 7, Gender: "male", Weight: 25, Height: 120},
		map[string]float64{"Chest": 56.4, "Waist": 50.0},
		time.Now())
}

func TestFileStore_PutAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("p1", "c1")
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, rec.MeasurementsCM, got.MeasurementsCM)
	assert.Equal(t, rec.InputParameters, got.InputParameters)
}

func TestFileStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "p1", "c1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Child c1 under parent p1 not found")
}

func TestFileStore_PutOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("p1", "c1")))

	replacement := testRecord("p1", "c1")
	replacement.MeasurementsCM = map[string]float64{"Chest": 60.0}
	replacement.MeasurementsInches = measurement.InchesFrom(replacement.MeasurementsCM)
	require.NoError(t, store.Put(ctx, replacement))

	got, err := store.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Chest": 60.0}, got.MeasurementsCM)
}

func TestFileStore_Update(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("p1", "c1")))

	got, err := store.Update(ctx, "p1", "c1", func(rec *measurement.Record) error {
		rec.ApplyUpdate(map[string]float64{"Waist": 52.0}, time.Now())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 52.0, got.MeasurementsCM["Waist"])
	assert.True(t, got.IsManuallyUpdated)

	// The mutation was persisted, not just returned.
	reread, err := store.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 52.0, reread.MeasurementsCM["Waist"])
	assert.True(t, reread.IsManuallyUpdated)
}

func TestFileStore_UpdateMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Update(context.Background(), "p1", "nope", func(*measurement.Record) error { return nil })
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFileStore_UpdateMutateErrorAbortsWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("p1", "c1")))

	boom := apperrors.Validation("bad value")
	_, err := store.Update(ctx, "p1", "c1", func(rec *measurement.Record) error {
		rec.MeasurementsCM["Waist"] = -1
		return boom
	})
	assert.Equal(t, boom, err)

	got, err := store.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.MeasurementsCM["Waist"])
}

func TestFileStore_TotalParents(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	n, err := store.TotalParents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.Put(ctx, testRecord("p1", "c1")))
	require.NoError(t, store.Put(ctx, testRecord("p1", "c2")))
	require.NoError(t, store.Put(ctx, testRecord("p2", "c1")))

	n, err = store.TotalParents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	n, err := store.TotalParents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.Get(context.Background(), "p1", "c1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFileStore_PersistedLayout(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), testRecord("p1", "c1")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "p1")
	require.Contains(t, doc["p1"], "c1")
	assert.Contains(t, doc["p1"]["c1"], "measurements_cm")
	assert.Contains(t, doc["p1"]["c1"], "prediction_timestamp")
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "p1", "c1")
	assert.ErrorIs(t, err, context.Canceled)
}
