// Package smoke exercises a deployed inference API end to end: a health
// probe first, then a prediction for a known record.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PatientRecord is one clinical observation in the shape the inference API
// expects. Field names follow the Cleveland heart-disease dataset.
type PatientRecord struct {
	Age      float64 `json:"age"`
	Sex      int     `json:"sex"`
	CP       int     `json:"cp"`
	Trestbps float64 `json:"trestbps"`
	Chol     float64 `json:"chol"`
	FBS      int     `json:"fbs"`
	Restecg  int     `json:"restecg"`
	Thalach  float64 `json:"thalach"`
	Exang    int     `json:"exang"`
	Oldpeak  float64 `json:"oldpeak"`
	Slope    int     `json:"slope"`
	CA       int     `json:"ca"`
	Thal     int     `json:"thal"`
}

// SampleRecord returns a dataset row with a known high-risk profile, used to
// verify a fresh deployment answers predictions at all.
func SampleRecord() PatientRecord {
	return PatientRecord{
		Age:      63,
		Sex:      1,
		CP:       3,
		Trestbps: 145,
		Chol:     233,
		FBS:      1,
		Restecg:  0,
		Thalach:  150,
		Exang:    0,
		Oldpeak:  2.3,
		Slope:    0,
		CA:       0,
		Thal:     1,
	}
}

// PredictionResponse is the API's verdict for one record.
type PredictionResponse struct {
	Prediction int     `json:"prediction"`
	Confidence float64 `json:"confidence"`
	RiskLevel  string  `json:"risk_level"`
	ModelUsed  string  `json:"model_used"`
}

// HealthResponse reports service and model status.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Client talks to one deployed inference API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a smoke test client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Health checks the service's health endpoint. An unhealthy service answers
// with a non-2xx status and surfaces as an error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := c.do(req, &health); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &health, nil
}

// Predict submits one record and returns the model's verdict.
func (c *Client) Predict(ctx context.Context, record PatientRecord) (*PredictionResponse, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var prediction PredictionResponse
	if err := c.do(req, &prediction); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return &prediction, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
