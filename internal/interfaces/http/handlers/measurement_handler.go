package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	appMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/application/measurement"
	domainMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// predictRequiredFields is checked in order so the first missing field is the
// one reported.
var predictRequiredFields = []string{"parent_id", "child_id", "height", "weight", "gender", "age"}

// MeasurementHandler serves the prediction, update and retrieval endpoints.
type MeasurementHandler struct {
	service appMeas.Service
	logger  logging.Logger
}

// NewMeasurementHandler constructs a MeasurementHandler.
func NewMeasurementHandler(service appMeas.Service, logger logging.Logger) *MeasurementHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MeasurementHandler{
		service: service,
		logger:  logger.Named("http.measurement"),
	}
}

// measurementEnvelope is the success response for predictions and updates.
type measurementEnvelope struct {
	Success            bool               `json:"success"`
	ParentID           string             `json:"parent_id"`
	ChildID            string             `json:"child_id"`
	MeasurementsCM     map[string]float64 `json:"measurements_cm"`
	MeasurementsInches map[string]float64 `json:"measurements_inches"`
	Message            string             `json:"message"`
}

// recordEnvelope is the full stored-record response for retrievals.
type recordEnvelope struct {
	Success             bool                       `json:"success"`
	ParentID            string                     `json:"parent_id"`
	ChildID             string                     `json:"child_id"`
	InputParameters     domainMeas.InputParameters `json:"input_parameters"`
	MeasurementsCM      map[string]float64         `json:"measurements_cm"`
	MeasurementsInches  map[string]float64         `json:"measurements_inches"`
	PredictionTimestamp string                     `json:"prediction_timestamp"`
	LastUpdated         string                     `json:"last_updated"`
	IsPredicted         bool                       `json:"is_predicted"`
	IsManuallyUpdated   bool                       `json:"is_manually_updated"`
}

// Predict handles POST /predict-measurements.
func (h *MeasurementHandler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	in, err := parsePredictRequest(body)
	if err != nil {
		writeAppError(w, err)
		return
	}

	rec, err := h.service.Predict(r.Context(), *in)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, measurementEnvelope{
		Success:            true,
		ParentID:           rec.ParentID,
		ChildID:            rec.ChildID,
		MeasurementsCM:     rec.MeasurementsCM,
		MeasurementsInches: rec.MeasurementsInches,
		Message:            "Measurements predicted and saved successfully",
	})
}

// Update handles PUT /update-measurements.
func (h *MeasurementHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	parentID, childID, err := parseIdentifiers(body)
	if err != nil {
		writeAppError(w, err)
		return
	}

	// A request without a "measurements" key rewrites the record untouched;
	// values stays nil in that case so the service can tell the two apart.
	var values map[string]float64
	if raw, ok := body["measurements"]; ok {
		values, err = parseMeasurementValues(raw)
		if err != nil {
			writeAppError(w, err)
			return
		}
	}

	rec, err := h.service.Update(r.Context(), parentID, childID, values)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, measurementEnvelope{
		Success:            true,
		ParentID:           rec.ParentID,
		ChildID:            rec.ChildID,
		MeasurementsCM:     rec.MeasurementsCM,
		MeasurementsInches: rec.MeasurementsInches,
		Message:            "Measurements updated successfully",
	})
}

// Get handles GET /get-measurements/{parent_id}/{child_id}.
func (h *MeasurementHandler) Get(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parent_id")
	childID := chi.URLParam(r, "child_id")

	rec, err := h.service.Get(r.Context(), parentID, childID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordEnvelope{
		Success:             true,
		ParentID:            rec.ParentID,
		ChildID:             rec.ChildID,
		InputParameters:     rec.InputParameters,
		MeasurementsCM:      rec.MeasurementsCM,
		MeasurementsInches:  rec.MeasurementsInches,
		PredictionTimestamp: rec.PredictionTimestamp,
		LastUpdated:         rec.LastUpdated,
		IsPredicted:         rec.IsPredicted,
		IsManuallyUpdated:   rec.IsManuallyUpdated,
	})
}

// parsePredictRequest validates and normalizes the prediction payload.  The
// checks run in a fixed order so error messages are deterministic: field
// presence, identifiers, numeric fields, ranges, then gender.
func parsePredictRequest(body map[string]json.RawMessage) (*domainMeas.PredictInput, error) {
	for _, f := range predictRequiredFields {
		if _, ok := body[f]; !ok {
			return nil, apperrors.Validation("Missing required field: " + f)
		}
	}

	parentID, childID, err := parseIdentifiers(body)
	if err != nil {
		return nil, err
	}

	age, err := numberField(body["age"], "Age")
	if err != nil {
		return nil, err
	}
	weight, err := numberField(body["weight"], "Weight")
	if err != nil {
		return nil, err
	}
	height, err := numberField(body["height"], "Height")
	if err != nil {
		return nil, err
	}
	if err := domainMeas.ValidateRanges(age, weight, height); err != nil {
		return nil, err
	}

	var genderInput domainMeas.GenderInput
	_ = json.Unmarshal(body["gender"], &genderInput)
	gender, err := genderInput.Normalize()
	if err != nil {
		return nil, err
	}

	var brand *string
	if raw, ok := body["brand"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			brand = &s
		}
	}

	return &domainMeas.PredictInput{
		ParentID: parentID,
		ChildID:  childID,
		Age:      age,
		Gender:   gender,
		Weight:   weight,
		Height:   height,
		Brand:    brand,
	}, nil
}

// parseIdentifiers extracts the parent/child pair shared by predictions and
// updates.
func parseIdentifiers(body map[string]json.RawMessage) (string, string, error) {
	raw, ok := body["parent_id"]
	if !ok {
		return "", "", apperrors.Validation("Missing required field: parent_id")
	}
	parentID, err := stringField(raw, "Parent ID must be a non-empty string")
	if err != nil {
		return "", "", err
	}

	raw, ok = body["child_id"]
	if !ok {
		return "", "", apperrors.Validation("Missing required field: child_id")
	}
	childID, err := stringField(raw, "Child ID must be a non-empty string")
	if err != nil {
		return "", "", err
	}

	return parentID, childID, nil
}

// parseMeasurementValues decodes the manual-update map.  Keys are checked
// against the accepted vocabulary before values are parsed, so an unknown key
// is reported even when its value is also malformed.
func parseMeasurementValues(raw json.RawMessage) (map[string]float64, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, apperrors.Validation("Measurements must be a dictionary")
	}

	values := make(map[string]float64, len(obj))
	for k, v := range obj {
		if !domainMeas.IsUpdatableKey(k) {
			return nil, domainMeas.InvalidUpdateKey(k)
		}
		n, err := numberField(v, "Measurement "+k)
		if err != nil {
			return nil, err
		}
		values[k] = n
	}
	return values, nil
}
