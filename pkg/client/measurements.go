package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/types/measurement"
)

// Predict requests a new measurement prediction for a child.
func (c *Client) Predict(ctx context.Context, req measurement.PredictRequest) (*measurement.Result, error) {
	var out measurement.Result
	if err := c.do(ctx, http.MethodPost, "/predict-measurements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overrides stored measurement values for a child.
func (c *Client) Update(ctx context.Context, req measurement.UpdateRequest) (*measurement.Result, error) {
	var out measurement.Result
	if err := c.do(ctx, http.MethodPut, "/update-measurements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get retrieves the stored record for a parent/child pair.
func (c *Client) Get(ctx context.Context, parentID, childID string) (*measurement.Record, error) {
	path := "/get-measurements/" + url.PathEscape(parentID) + "/" + url.PathEscape(childID)
	var out measurement.Record
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the service status.
func (c *Client) Health(ctx context.Context) (*measurement.Health, error) {
	var out measurement.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask sends a question to the FAQ assistant.
func (c *Client) Ask(ctx context.Context, message string) (*measurement.ChatResponse, error) {
	var out measurement.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/faq-chatbot", measurement.ChatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
