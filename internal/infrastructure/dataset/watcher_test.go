package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
)

func TestWatcher_ObservesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brandsize.csv")
	require.NoError(t, os.WriteFile(path, []byte("Brand\n"), 0o644))

	m := metrics.New("swakarthi_test")
	w, err := NewWatcher(path, logging.NewNopLogger(), m)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.NoError(t, os.WriteFile(path, []byte("Brand\nZara\n"), 0o644))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.DatasetChangesTotal) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brandsize.csv")
	require.NoError(t, os.WriteFile(path, []byte("Brand\n"), 0o644))

	m := metrics.New("swakarthi_test")
	w, err := NewWatcher(path, logging.NewNopLogger(), m)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatasetChangesTotal))
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher("/nonexistent/dir/brandsize.csv", logging.NewNopLogger(), nil)
	assert.Error(t, err)
}
