package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/persistence"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Store implements persistence.Store on PostgreSQL.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

var _ persistence.Store = (*Store)(nil)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{db: db, logger: logger.Named("pgstore")}
}

func (s *Store) Get(ctx context.Context, parentID, childID string) (*measurement.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM measurement_records WHERE parent_id = $1 AND child_id = $2`,
		parentID, childID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrRecordNotFound(parentID, childID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to query measurement record")
	}

	var rec measurement.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode measurement record")
	}
	return &rec, nil
}

func (s *Store) Put(ctx context.Context, rec *measurement.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode measurement record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO measurement_records (parent_id, child_id, record)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (parent_id, child_id) DO UPDATE SET record = EXCLUDED.record, updated_at = now()`,
		rec.ParentID, rec.ChildID, data)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to save measurement record")
	}
	return nil
}

// Update performs the read-modify-write inside a transaction with the row
// locked, so concurrent updates to the same pair serialize instead of losing
// writes.
func (s *Store) Update(ctx context.Context, parentID, childID string, mutate func(*measurement.Record) error) (*measurement.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	var data []byte
	err = tx.QueryRowContext(ctx,
		`SELECT record FROM measurement_records WHERE parent_id = $1 AND child_id = $2 FOR UPDATE`,
		parentID, childID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrRecordNotFoundForUpdate(parentID, childID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to query measurement record")
	}

	var rec measurement.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode measurement record")
	}

	if err := mutate(&rec); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(&rec)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode measurement record")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE measurement_records SET record = $3, updated_at = now() WHERE parent_id = $1 AND child_id = $2`,
		parentID, childID, updated); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to save measurement record")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodePersistenceFailure, "failed to commit measurement update")
	}
	return &rec, nil
}

func (s *Store) TotalParents(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT parent_id) FROM measurement_records`).Scan(&n)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to count parents")
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
