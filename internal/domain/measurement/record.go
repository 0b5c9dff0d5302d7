package measurement

import (
	"math"
	"time"
)

// CmPerInch converts centimeter values to inches for the dual-unit view.
const CmPerInch = 2.54

// InputParameters is the snapshot of the request that produced a prediction.
// It is immutable once written; only a new prediction replaces it.
type InputParameters struct {
	Age    float64 `json:"age"`
	Gender string  `json:"gender"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Brand  *string `json:"brand"`
}

// Record is the persisted measurement result for one child under one parent.
// Field names match the on-disk document layout exactly.
type Record struct {
	ParentID            string             `json:"parent_id"`
	ChildID             string             `json:"child_id"`
	InputParameters     InputParameters    `json:"input_parameters"`
	MeasurementsCM      map[string]float64 `json:"measurements_cm"`
	MeasurementsInches  map[string]float64 `json:"measurements_inches"`
	PredictionTimestamp string             `json:"prediction_timestamp"`
	LastUpdated         string             `json:"last_updated"`
	IsPredicted         bool               `json:"is_predicted"`
	IsManuallyUpdated   bool               `json:"is_manually_updated"`
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// InchesFrom derives the inches view from a centimeter map.  Every key is
// present in the result; values are cm/2.54 rounded to two decimals.
func InchesFrom(cm map[string]float64) map[string]float64 {
	inches := make(map[string]float64, len(cm))
	for k, v := range cm {
		inches[k] = Round2(v / CmPerInch)
	}
	return inches
}

// NewRecord builds a fresh prediction record with both unit views and new
// timestamps.  The inches map is always derived, never supplied.
func NewRecord(parentID, childID string, params InputParameters, cm map[string]float64, now time.Time) *Record {
	ts := now.Format(time.RFC3339Nano)
	return &Record{
		ParentID:            parentID,
		ChildID:             childID,
		InputParameters:     params,
		MeasurementsCM:      cm,
		MeasurementsInches:  InchesFrom(cm),
		PredictionTimestamp: ts,
		LastUpdated:         ts,
		IsPredicted:         true,
		IsManuallyUpdated:   false,
	}
}

// ApplyUpdate merges the supplied measurement values into the record, rounding
// each to two decimals, then rebuilds the entire inches map so the two views
// never drift.  The manual-update flag is set and last_updated refreshed;
// prediction_timestamp and is_predicted are untouched.
func (r *Record) ApplyUpdate(values map[string]float64, now time.Time) {
	if r.MeasurementsCM == nil {
		r.MeasurementsCM = make(map[string]float64, len(values))
	}
	for k, v := range values {
		r.MeasurementsCM[k] = Round2(v)
	}
	r.MeasurementsInches = InchesFrom(r.MeasurementsCM)
	r.LastUpdated = now.Format(time.RFC3339Nano)
	r.IsManuallyUpdated = true
}
