package measurement

import (
	"fmt"
	"strings"

	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Inclusive input ranges accepted by prediction requests.
const (
	MinAge    = 3.0
	MaxAge    = 18.0
	MinWeight = 10.0
	MaxWeight = 120.0
	MinHeight = 80.0
	MaxHeight = 220.0
)

// UpdatableKeys is the restricted vocabulary accepted by manual updates, in
// the order reported back in validation messages.
var UpdatableKeys = []string{"Waist", "Hip", "Bicep", "Neck", "Wrist", "Chest", "Shoulder", "Sleeve"}

var updatableKeySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(UpdatableKeys))
	for _, k := range UpdatableKeys {
		set[k] = struct{}{}
	}
	return set
}()

// IsUpdatableKey reports whether k belongs to the manual-update vocabulary.
func IsUpdatableKey(k string) bool {
	_, ok := updatableKeySet[k]
	return ok
}

// InvalidUpdateKey builds the validation error reported for a key outside the
// manual-update vocabulary.
func InvalidUpdateKey(k string) error {
	return apperrors.Validation(fmt.Sprintf(
		"Invalid measurement key: %s. Valid keys are: %s", k, strings.Join(UpdatableKeys, ", ")))
}

// PredictInput is a fully validated, normalized prediction request.
type PredictInput struct {
	ParentID string
	ChildID  string
	Age      float64
	Gender   Gender
	Weight   float64
	Height   float64
	Brand    *string
}

// ValidateIdentifiers checks the composite-key fields shared by every
// operation.
func ValidateIdentifiers(parentID, childID string) error {
	if strings.TrimSpace(parentID) == "" {
		return apperrors.Validation("Parent ID must be a non-empty string")
	}
	if strings.TrimSpace(childID) == "" {
		return apperrors.Validation("Child ID must be a non-empty string")
	}
	return nil
}

// ValidateRanges checks the numeric prediction inputs against the inclusive
// accepted ranges.
func ValidateRanges(age, weight, height float64) error {
	if age < MinAge || age > MaxAge {
		return apperrors.Validation("Age must be between 3 and 18 years")
	}
	if weight < MinWeight || weight > MaxWeight {
		return apperrors.Validation("Weight must be between 10.0 and 120.0 kg")
	}
	if height < MinHeight || height > MaxHeight {
		return apperrors.Validation("Height must be between 80.0 and 220.0 cm")
	}
	return nil
}

// ValidateUpdateValues checks a manual-update payload: every key must belong
// to the restricted vocabulary and every value must be positive.
func ValidateUpdateValues(values map[string]float64) error {
	for k, v := range values {
		if _, ok := updatableKeySet[k]; !ok {
			return InvalidUpdateKey(k)
		}
		if v <= 0 {
			return apperrors.Validation(fmt.Sprintf("Measurement %s must be a positive number", k))
		}
	}
	return nil
}
