// Package persistence defines the measurement record store contract and its
// file-backed implementation.
package persistence

import (
	"context"
	"fmt"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Store is keyed persistence for measurement records: parent_id → child_id →
// record.  Records are created or wholly replaced by Put and mutated in place
// by Update; there is no delete operation.
type Store interface {
	// Get returns the record for the parent/child pair, or a not-found error.
	Get(ctx context.Context, parentID, childID string) (*measurement.Record, error)

	// Put creates or overwrites the record under its own parent/child key.
	Put(ctx context.Context, rec *measurement.Record) error

	// Update loads the existing record, applies mutate to it, and persists
	// the result as one read-modify-write. It returns a not-found error when
	// the pair has no record; an error from mutate aborts the write.
	Update(ctx context.Context, parentID, childID string, mutate func(*measurement.Record) error) (*measurement.Record, error)

	// TotalParents returns the number of distinct parent identifiers with at
	// least one record.
	TotalParents(ctx context.Context) (int, error)

	Close() error
}

// ErrRecordNotFound builds the caller-facing not-found error for reads.
func ErrRecordNotFound(parentID, childID string) error {
	return apperrors.New(apperrors.ErrCodeRecordNotFound,
		fmt.Sprintf("Child %s under parent %s not found", childID, parentID))
}

// ErrRecordNotFoundForUpdate is the update-path variant, which additionally
// tells the caller how to create the record.
func ErrRecordNotFoundForUpdate(parentID, childID string) error {
	return apperrors.New(apperrors.ErrCodeRecordNotFound,
		fmt.Sprintf("Child %s under parent %s not found. Please make a prediction first.", childID, parentID))
}
