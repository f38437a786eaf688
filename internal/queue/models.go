package queue

import (
	"strings"
	"time"

	"clipforge/internal/media"
)

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusEncoding   Status = "encoding"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusEncoding,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Terminal reports whether a status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is a render job record. Output format and resolution are captured at
// creation and never change afterwards.
type Job struct {
	ID             string       `json:"id"`
	ProjectID      string       `json:"projectId"`
	Format         media.Format `json:"format"`
	Resolution     string       `json:"resolution"`
	Status         Status       `json:"status"`
	Progress       int          `json:"progress"`
	FramesRendered int          `json:"framesRendered"`
	FramesTotal    int          `json:"framesTotal"`
	OutputPath     string       `json:"outputPath,omitempty"`
	ErrorMessage   string       `json:"error,omitempty"`
	StartedAt      time.Time    `json:"startTime"`
	EndedAt        *time.Time   `json:"endTime,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (j *Job) Terminal() bool {
	return j.Status.Terminal()
}

// Clone returns a copy safe to hand to callers while the owning task keeps
// mutating its own record.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	cp := *j
	if j.EndedAt != nil {
		ended := *j.EndedAt
		cp.EndedAt = &ended
	}
	return &cp
}

// SetFailed marks the job failed with the given message and freezes progress
// at whatever value had been reached.
func (j *Job) SetFailed(message string, now time.Time) {
	j.Status = StatusFailed
	j.ErrorMessage = message
	ended := now
	j.EndedAt = &ended
}

// SetCompleted marks the job completed. Progress is pinned at 100.
func (j *Job) SetCompleted(now time.Time) {
	j.Status = StatusCompleted
	j.Progress = 100
	j.FramesRendered = j.FramesTotal
	ended := now
	j.EndedAt = &ended
}
