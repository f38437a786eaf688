package api

import (
	"clipforge/internal/media"
	"clipforge/internal/queue"
)

// Envelope wraps every response body. Error is set only on failures.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptimeSeconds"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Format      string `json:"format"`
	Quality     string `json:"quality"`
	FPS         int    `json:"fps"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type AddClipRequest struct {
	FileName  string   `json:"fileName"`
	StartTime *float64 `json:"startTime"`
	EndTime   *float64 `json:"endTime"`
	Duration  *float64 `json:"duration"`
	Position  *float64 `json:"position"`
	Track     *int     `json:"track"`
}

type UpdateClipRequest struct {
	StartTime *float64 `json:"startTime"`
	EndTime   *float64 `json:"endTime"`
	Position  *float64 `json:"position"`
	Track     *int     `json:"track"`
}

type AddEffectRequest struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
	Enabled    *bool          `json:"enabled"`
}

type UpdateEffectRequest struct {
	Parameters map[string]any `json:"parameters"`
	Enabled    *bool          `json:"enabled"`
}

type RenderRequest struct {
	Format     string `json:"format"`
	Resolution string `json:"resolution"`
}

type RenderSubmitResponse struct {
	JobID  string       `json:"jobId"`
	Status queue.Status `json:"status"`
}

type FormatsResponse struct {
	Output []media.Format `json:"output"`
	// Input containers are a superset of the output enum, so plain strings.
	Input     []string             `json:"input"`
	Qualities []QualityDescription `json:"qualities"`
}

type QualityDescription struct {
	Quality media.Quality `json:"quality"`
	Codec   string        `json:"codec"`
	Bitrate string        `json:"bitrate"`
}
