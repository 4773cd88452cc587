// Package apiclient is a Go client for the song and job API. WaitForJob polls a
// job until it reaches a terminal status, and SimulatePlan composes a cut plan
// locally from a fetched song with the same engine the server uses.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/model"
)

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the API with a bearer token
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetSong(ctx context.Context, songID string) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodGet, songPath(songID, ""), nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *Client) SetTarget(ctx context.Context, songID string, req *model.SetTargetRequest) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPut, songPath(songID, "/target"), req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *Client) SetTags(ctx context.Context, songID string, edits []model.TagEdit) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPut, songPath(songID, "/tags"), &model.SetTagsRequest{Tags: edits}, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Preview asks the server for the plan a generation would use
func (c *Client) Preview(ctx context.Context, songID string, req *model.PreviewRequest) (*model.CutPlan, error) {
	var plan model.CutPlan
	if err := c.do(ctx, http.MethodPost, songPath(songID, "/preview"), req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) Analyze(ctx context.Context, songID string) (*model.JobStartResponse, error) {
	var resp model.JobStartResponse
	if err := c.do(ctx, http.MethodPost, songPath(songID, "/analyze"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Generate(ctx context.Context, songID string) (*model.JobStartResponse, error) {
	var resp model.JobStartResponse
	if err := c.do(ctx, http.MethodPost, songPath(songID, "/generate"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) JobStatus(ctx context.Context, songID string, kind model.JobKind) (*model.JobStatusResponse, error) {
	var resp model.JobStatusResponse
	if err := c.do(ctx, http.MethodGet, songPath(songID, "/jobs/"+string(kind)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download returns a signed URL for the cut or the original file
func (c *Client) Download(ctx context.Context, songID, fileType string) (*model.DownloadResponse, error) {
	var resp model.DownloadResponse
	path := songPath(songID, "/download") + "?type=" + url.QueryEscape(fileType)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForJob polls the job every interval until it is ready or failed. It stops
// with ctx.Err() when the context ends, and on the first request error.
func (c *Client) WaitForJob(ctx context.Context, songID string, kind model.JobKind, interval time.Duration) (*model.JobStatusResponse, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := c.JobStatus(ctx, songID, kind)
		if err != nil {
			return nil, err
		}
		if status.Status.IsTerminal() {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// SimulatePlan fetches the song and composes its plan locally. Nil tags or a
// zero target fall back to what is stored on the song.
func (c *Client) SimulatePlan(ctx context.Context, songID string, tags []model.TagAssignment, targetMs int, opts cutplan.Options) (*model.CutPlan, error) {
	song, err := c.GetSong(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song.Analysis == nil {
		return nil, errors.New("song has no analysis yet")
	}

	in := cutplan.Input{Analysis: *song.Analysis, Tags: song.SectionTags, TargetDurationMs: targetMs}
	if tags != nil {
		in.Tags = tags
	}
	if in.TargetDurationMs == 0 && song.TargetDurationMs != nil {
		in.TargetDurationMs = *song.TargetDurationMs
	}
	return cutplan.Compose(in, opts)
}

func songPath(songID, suffix string) string {
	return "/api/songs/" + url.PathEscape(songID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
