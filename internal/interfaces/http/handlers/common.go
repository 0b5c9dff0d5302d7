// Package handlers implements the HTTP endpoints of the measurement service.
// Request and response shapes follow the service's established public API:
// errors are {"error": message} and successes carry a "success" flag.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// errorResponse is the public error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes the error envelope with the given status.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeAppError maps an application error onto its HTTP status.  Validation
// and not-found messages pass through verbatim; everything else is masked as
// a generic internal error so no internal detail leaks.
func writeAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatusForCode(code)

	var ae *apperrors.AppError
	message := "Internal server error"
	switch {
	case apperrors.IsValidation(err) || apperrors.IsNotFound(err):
		if errors.As(err, &ae) {
			message = ae.Message
		}
	case apperrors.IsModelNotLoaded(err):
		message = apperrors.DefaultMessageForCode(apperrors.ErrCodeModelNotLoaded)
	case apperrors.IsCode(err, apperrors.ErrCodeGenerationFailed):
		if errors.As(err, &ae) {
			message = ae.Message
		}
	case apperrors.IsCode(err, apperrors.ErrCodePersistenceFailure):
		message = "Failed to save updated measurements"
	}

	writeError(w, status, message)
}

// decodeBody reads the request body into a raw field map, enforcing the
// JSON-only contract.
func decodeBody(r *http.Request) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "Request must be JSON")
	}
	return body, nil
}

// isJSONNull reports whether raw is the JSON literal null.  Unmarshal into a
// string or float64 treats null as a no-op with a nil error, so every typed
// field decode has to rule it out first.
func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stringField extracts a non-empty string, returning the supplied message on
// any violation.
func stringField(raw json.RawMessage, message string) (string, error) {
	if isJSONNull(raw) {
		return "", apperrors.Validation(message)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return "", apperrors.Validation(message)
	}
	return s, nil
}

// numberField extracts a float from a JSON number or numeric string.  label
// names the field in the error message.
func numberField(raw json.RawMessage, label string) (float64, error) {
	if isJSONNull(raw) {
		return 0, apperrors.Validation(label + " must be a valid number")
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed, nil
		}
	}
	return 0, apperrors.Validation(label + " must be a valid number")
}
