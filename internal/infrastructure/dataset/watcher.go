// Package dataset observes the brand reference dataset on disk.  The brand
// resolver re-reads the file on every lookup, so the watcher exists purely for
// visibility: operators see dataset swaps in the logs and metrics without any
// cache to invalidate.
package dataset

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Watcher reports write and create events on the dataset file.
type Watcher struct {
	path    string
	logger  logging.Logger
	metrics *metrics.Metrics
	fsw     *fsnotify.Watcher
}

// NewWatcher creates a watcher for the dataset at path.  The parent directory
// is watched rather than the file itself so that atomic replace-by-rename is
// still observed.
func NewWatcher(path string, logger logging.Logger, m *metrics.Metrics) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create dataset watcher")
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to watch dataset directory")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Watcher{
		path:    path,
		logger:  logger.Named("dataset"),
		metrics: m,
		fsw:     fsw,
	}, nil
}

// Run blocks until ctx is cancelled, logging each observed change to the
// dataset file.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Info("brand dataset changed on disk",
				logging.String("path", w.path),
				logging.String("op", event.Op.String()))
			if w.metrics != nil {
				w.metrics.DatasetChangesTotal.Inc()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", logging.Err(err))
		}
	}
}
