package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeValidation         ErrorCode = "COMMON_004"
	ErrCodeSerialization      ErrorCode = "COMMON_005"
	ErrCodeDatabaseError      ErrorCode = "COMMON_006"
	ErrCodeExternalService    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
)

// Measurement module error codes.
const (
	ErrCodeRecordNotFound     ErrorCode = "MEAS_001"
	ErrCodeInvalidMeasurement ErrorCode = "MEAS_002"
	ErrCodePersistenceFailure ErrorCode = "MEAS_003"
	ErrCodeInputOutOfRange    ErrorCode = "MEAS_004"
)

// Brand dataset error codes.
const (
	ErrCodeDatasetUnavailable ErrorCode = "BRAND_001"
	ErrCodeDatasetParseError  ErrorCode = "BRAND_002"
)

// Predictor model error codes.
const (
	ErrCodeModelNotLoaded    ErrorCode = "MODEL_001"
	ErrCodeInferenceFailed   ErrorCode = "MODEL_002"
	ErrCodeModelInputInvalid ErrorCode = "MODEL_003"
	ErrCodeArtifactInvalid   ErrorCode = "MODEL_004"
)

// Assistant error codes.
const (
	ErrCodeGenerationFailed ErrorCode = "BOT_001"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeRecordNotFound:     http.StatusNotFound,
	ErrCodeInvalidMeasurement: http.StatusBadRequest,
	ErrCodePersistenceFailure: http.StatusInternalServerError,
	ErrCodeInputOutOfRange:    http.StatusBadRequest,

	ErrCodeDatasetUnavailable: http.StatusServiceUnavailable,
	ErrCodeDatasetParseError:  http.StatusInternalServerError,

	ErrCodeModelNotLoaded:    http.StatusInternalServerError,
	ErrCodeInferenceFailed:   http.StatusInternalServerError,
	ErrCodeModelInputInvalid: http.StatusBadRequest,
	ErrCodeArtifactInvalid:   http.StatusInternalServerError,

	ErrCodeGenerationFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeExternalService:    "external service error",
	ErrCodeServiceUnavailable: "service unavailable",

	ErrCodeRecordNotFound:     "measurement record not found",
	ErrCodeInvalidMeasurement: "invalid measurement",
	ErrCodePersistenceFailure: "failed to save measurements",
	ErrCodeInputOutOfRange:    "input parameter out of range",

	ErrCodeDatasetUnavailable: "brand reference dataset unavailable",
	ErrCodeDatasetParseError:  "failed to parse brand reference dataset",

	ErrCodeModelNotLoaded:    "Model not initialized",
	ErrCodeInferenceFailed:   "model inference failed",
	ErrCodeModelInputInvalid: "invalid input for prediction model",
	ErrCodeArtifactInvalid:   "invalid model artifact",

	ErrCodeGenerationFailed: "text generation failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
