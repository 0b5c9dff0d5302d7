// Package measurement defines the wire types of the measurement API, shared
// by the SDK client and external consumers.
package measurement

// PredictRequest is the body of POST /predict-measurements.
type PredictRequest struct {
	ParentID string  `json:"parent_id"`
	ChildID  string  `json:"child_id"`
	Age      float64 `json:"age"`
	Gender   string  `json:"gender"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Brand    string  `json:"brand,omitempty"`
}

// UpdateRequest is the body of PUT /update-measurements.  A nil Measurements
// map omits the field entirely, which rewrites the stored record unchanged.
type UpdateRequest struct {
	ParentID     string             `json:"parent_id"`
	ChildID      string             `json:"child_id"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// Result is the response of predictions and updates.
type Result struct {
	Success            bool               `json:"success"`
	ParentID           string             `json:"parent_id"`
	ChildID            string             `json:"child_id"`
	MeasurementsCM     map[string]float64 `json:"measurements_cm"`
	MeasurementsInches map[string]float64 `json:"measurements_inches"`
	Message            string             `json:"message"`
}

// InputParameters is the request snapshot stored with every record.
type InputParameters struct {
	Age    float64 `json:"age"`
	Gender string  `json:"gender"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Brand  *string `json:"brand"`
}

// Record is the full stored record returned by GET /get-measurements.
type Record struct {
	Success             bool               `json:"success"`
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

// Health is the response of GET /health.
type Health struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	TotalUsers       int    `json:"total_users"`
	MeasurementsFile string `json:"measurements_file"`
}

// ChatRequest is the body of POST /faq-chatbot.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the FAQ assistant reply.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}
