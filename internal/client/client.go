// Package client is the HTTP client the CLI uses to talk to a running
// daemon. Responses arrive in the API's JSON envelope; failures surface the
// envelope's error message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clipforge/internal/api"
	"clipforge/internal/media"
	"clipforge/internal/queue"
)

// Client talks to the daemon's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New constructs a client for the given bind address or base URL.
func New(address string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(address), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks daemon liveness.
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Metrics returns the daemon's counter snapshot as raw JSON.
func (c *Client) Metrics(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/metrics", nil, &out)
	return out, err
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, req api.CreateProjectRequest) (*media.Project, error) {
	var out media.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]*media.Project, error) {
	var out []*media.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out)
	return out, err
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, id string) (*media.Project, error) {
	var out media.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddClip appends a clip to a project.
func (c *Client) AddClip(ctx context.Context, projectID string, req api.AddClipRequest) (*media.Clip, error) {
	var out media.Clip
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/clips", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClip adjusts a clip's trim or placement.
func (c *Client) UpdateClip(ctx context.Context, projectID, clipID string, req api.UpdateClipRequest) (*media.Clip, error) {
	var out media.Clip
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+projectID+"/clips/"+clipID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEffect attaches an effect to a clip.
func (c *Client) AddEffect(ctx context.Context, projectID, clipID string, req api.AddEffectRequest) (*media.Effect, error) {
	var out media.Effect
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/clips/"+clipID+"/effects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEffect mutates an attached effect.
func (c *Client) UpdateEffect(ctx context.Context, projectID, clipID, effectID string, req api.UpdateEffectRequest) (*media.Effect, error) {
	var out media.Effect
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+projectID+"/clips/"+clipID+"/effects/"+effectID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Timeline returns the derived timeline.
func (c *Client) Timeline(ctx context.Context, projectID string) (media.Timeline, error) {
	var out media.Timeline
	err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/timeline", nil, &out)
	return out, err
}

// SubmitRender queues a render job for a project.
func (c *Client) SubmitRender(ctx context.Context, projectID string, req api.RenderRequest) (api.RenderSubmitResponse, error) {
	var out api.RenderSubmitResponse
	err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/render", req, &out)
	return out, err
}

// GetJob returns the current state of a render job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*queue.Job, error) {
	var out queue.Job
	if err := c.do(ctx, http.MethodGet, "/api/render/"+jobID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobs returns all render jobs, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]*queue.Job, error) {
	var out []*queue.Job
	err := c.do(ctx, http.MethodGet, "/api/render/", nil, &out)
	return out, err
}

// Effects returns the effect catalog grouped by type.
func (c *Client) Effects(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/effects", nil, &out)
	return out, err
}

// Formats returns the supported formats and quality tiers.
func (c *Client) Formats(ctx context.Context) (api.FormatsResponse, error) {
	var out api.FormatsResponse
	err := c.do(ctx, http.MethodGet, "/api/formats", nil, &out)
	return out, err
}

// WaitForJob polls until the job reaches a terminal state or ctx expires.
func (c *Client) WaitForJob(ctx context.Context, jobID string, interval time.Duration) (*queue.Job, error) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job.Terminal() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if !envelope.Success {
		message := envelope.Error
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("%s", message)
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
