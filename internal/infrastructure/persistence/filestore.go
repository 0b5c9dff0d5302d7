package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// document is the on-disk layout: parent_id → child_id → record.
type document map[string]map[string]*measurement.Record

// FileStore persists the whole record mapping as one JSON document.  Every
// mutation is a full read-modify-write of the file, serialized by a process
// local mutex; concurrent processes writing the same file can still lose
// updates (last writer wins).
type FileStore struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store over the JSON document at path.  The file is
// not created until the first write.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FileStore{
		path:   path,
		logger: logger.Named("filestore"),
	}
}

// load reads the whole document.  A missing file yields an empty mapping; so
// does corrupt content, which is logged and discarded rather than surfaced.
func (s *FileStore) load() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to read measurements file",
				logging.String("path", s.path), logging.Err(err))
		}
		return document{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("could not decode measurements file, starting with empty data",
			logging.String("path", s.path), logging.Err(err))
		return document{}
	}
	if doc == nil {
		doc = document{}
	}
	return doc
}

// save writes the whole document through a temp file and rename so readers
// never observe a partially written file.
func (s *FileStore) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to encode measurements")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".measurements-*.json")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to write measurements")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to flush measurements")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to replace measurements file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, parentID, childID string) (*measurement.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load()[parentID][childID]
	if !ok {
		return nil, ErrRecordNotFound(parentID, childID)
	}
	return rec, nil
}

func (s *FileStore) Put(ctx context.Context, rec *measurement.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if doc[rec.ParentID] == nil {
		doc[rec.ParentID] = make(map[string]*measurement.Record)
	}
	doc[rec.ParentID][rec.ChildID] = rec
	return s.save(doc)
}

func (s *FileStore) Update(ctx context.Context, parentID, childID string, mutate func(*measurement.Record) error) (*measurement.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	rec, ok := doc[parentID][childID]
	if !ok {
		return nil, ErrRecordNotFoundForUpdate(parentID, childID)
	}
	if err := mutate(rec); err != nil {
		return nil, err
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) TotalParents(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load()), nil
}

func (s *FileStore) Close() error {
	return nil
}
