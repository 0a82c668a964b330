package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// GenerationInput mirrors the input block of a prediction request for a
// text-to-image model.
type GenerationInput struct {
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// Client talks to the Replicate predictions API: it creates a prediction
// and polls it until it reaches a terminal state.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	version      string
	pollInterval time.Duration
	logger       zerolog.Logger
}

// NewClient creates a Client for the given API root and model reference.
// The model reference may be the full "owner/model:versionhash" form; only
// the version hash is sent on the wire.
func NewClient(baseURL, token, model string, pollInterval time.Duration, logger zerolog.Logger) *Client {
	version := model
	if i := strings.LastIndex(model, ":"); i >= 0 {
		version = model[i+1:]
	}
	return &Client{
		httpClient:   &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		version:      version,
		pollInterval: pollInterval,
		logger:       logger.With().Str("component", "replicate").Logger(),
	}
}

type createRequest struct {
	Version string          `json:"version"`
	Input   GenerationInput `json:"input"`
}

type prediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error"`
}

type apiError struct {
	Detail string `json:"detail"`
}

// Generate runs the model with the given input and returns the output
// image URLs. The call blocks until the prediction reaches a terminal
// state or ctx is done; there is no internal timeout.
func (c *Client) Generate(ctx context.Context, input GenerationInput) ([]string, error) {
	pred, err := c.createPrediction(ctx, input)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("prediction_id", pred.ID).Msg("prediction created")

	for !isTerminal(pred.Status) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return nil, err
		}
	}

	switch pred.Status {
	case "succeeded":
		if len(pred.Output) == 0 {
			return nil, fmt.Errorf("model returned no output")
		}
		return pred.Output, nil
	case "canceled":
		return nil, fmt.Errorf("prediction %s was canceled", pred.ID)
	default:
		if pred.Error != "" {
			return nil, fmt.Errorf("prediction failed: %s", pred.Error)
		}
		return nil, fmt.Errorf("prediction %s failed", pred.ID)
	}
}

func isTerminal(status string) bool {
	switch status {
	case "succeeded", "failed", "canceled":
		return true
	}
	return false
}

func (c *Client) createPrediction(ctx context.Context, input GenerationInput) (*prediction, error) {
	body, err := json.Marshal(createRequest{Version: c.version, Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	return c.doPrediction(req)
}

func (c *Client) getPrediction(ctx context.Context, id string) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/predictions/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)

	return c.doPrediction(req)
}

func (c *Client) doPrediction(req *http.Request) (*prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Detail != "" {
			return nil, fmt.Errorf("replicate API error (status %d): %s", resp.StatusCode, apiErr.Detail)
		}
		return nil, fmt.Errorf("replicate API error: status %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &pred, nil
}
