package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/choreosync/api/internal/config"
	"github.com/choreosync/api/internal/model"
)

// ErrWorkerNotConfigured is returned when no URL is set for a worker.
var ErrWorkerNotConfigured = errors.New("worker not configured")

// Dispatcher hands jobs to the external analysis and render workers. A nil error
// means the worker accepted the job, not that it finished.
type Dispatcher interface {
	DispatchAnalysis(ctx context.Context, req *AnalysisDispatch) error
	DispatchGeneration(ctx context.Context, req *GenerationDispatch) error
}

// AnalysisDispatch is the Analysis Worker's request body
type AnalysisDispatch struct {
	SongID     string `json:"song_id"`
	JobID      string `json:"job_id"`
	StorageKey string `json:"storage_key"`
}

// GenerationDispatch is the Render Worker's request body
type GenerationDispatch struct {
	SongID     string         `json:"song_id"`
	JobID      string         `json:"job_id"`
	StorageKey string         `json:"storage_key"`
	Plan       *model.CutPlan `json:"plan"`
}

// WorkerClient implements Dispatcher over HTTP
type WorkerClient struct {
	httpClient  *http.Client
	analyzeURL  string
	generateURL string
	secret      string
}

// NewWorkerClient creates a worker client. The timeout bounds the wait for the
// worker's accept or reject.
func NewWorkerClient(cfg *config.WorkerConfig, secret string) *WorkerClient {
	return &WorkerClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		analyzeURL:  cfg.AnalyzeURL,
		generateURL: cfg.GenerateURL,
		secret:      secret,
	}
}

// IsConfigured reports whether both worker endpoints are set
func (c *WorkerClient) IsConfigured() bool {
	return c.analyzeURL != "" && c.generateURL != ""
}

func (c *WorkerClient) DispatchAnalysis(ctx context.Context, req *AnalysisDispatch) error {
	return c.post(ctx, c.analyzeURL, req)
}

func (c *WorkerClient) DispatchGeneration(ctx context.Context, req *GenerationDispatch) error {
	return c.post(ctx, c.generateURL, req)
}

// post sends a JSON body and treats any 2xx as acceptance
func (c *WorkerClient) post(ctx context.Context, url string, body interface{}) error {
	if url == "" {
		return ErrWorkerNotConfigured
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Webhook-Secret", c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("worker returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
