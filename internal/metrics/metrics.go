// Package metrics is the side-channel counter sink the core subsystems write
// into. The Registry keeps label-keyed counters in process and exposes a
// snapshot for the /metrics endpoint; callers treat the Sink as write-only.
package metrics

import (
	"sort"
	"strings"
	"sync"
)

// Sink receives operational counters from the core subsystems.
type Sink interface {
	RecordRenderJob(format, resolution string, seconds float64, status string)
	RecordRenderProgress()
	RecordTimelineOp(operation, status string)
	RecordEffectApplication(effectType, status string)
}

// Registry is an in-process Sink with a readable snapshot.
type Registry struct {
	mu              sync.Mutex
	renderJobs      map[string]int64
	renderSeconds   map[string]float64
	progressUpdates int64
	timelineOps     map[string]int64
	effectApplied   map[string]int64
}

// NewRegistry constructs an empty metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		renderJobs:    make(map[string]int64),
		renderSeconds: make(map[string]float64),
		timelineOps:   make(map[string]int64),
		effectApplied: make(map[string]int64),
	}
}

func labelKey(labels ...string) string {
	return strings.Join(labels, "|")
}

// RecordRenderJob counts a render job transition keyed by format, resolution,
// and status, accumulating elapsed seconds per format/resolution pair.
func (r *Registry) RecordRenderJob(format, resolution string, seconds float64, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderJobs[labelKey(format, resolution, status)]++
	if seconds > 0 {
		r.renderSeconds[labelKey(format, resolution)] += seconds
	}
}

// RecordRenderProgress counts one progress tick.
func (r *Registry) RecordRenderProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progressUpdates++
}

// RecordTimelineOp counts a timeline mutation (add_clip, update_clip, ...).
func (r *Registry) RecordTimelineOp(operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timelineOps[labelKey(operation, status)]++
}

// RecordEffectApplication counts an effect attachment by type.
func (r *Registry) RecordEffectApplication(effectType, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effectApplied[labelKey(effectType, status)]++
}

// Counter is one labeled counter value in a snapshot.
type Counter struct {
	Labels string `json:"labels"`
	Value  int64  `json:"value"`
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	RenderJobs      []Counter          `json:"render_jobs_total"`
	RenderSeconds   map[string]float64 `json:"render_duration_seconds"`
	ProgressUpdates int64              `json:"render_progress_updates_total"`
	TimelineOps     []Counter          `json:"timeline_operations_total"`
	EffectsApplied  []Counter          `json:"effect_applications_total"`
}

func sortedCounters(values map[string]int64) []Counter {
	counters := make([]Counter, 0, len(values))
	for labels, value := range values {
		counters = append(counters, Counter{Labels: labels, Value: value})
	}
	sort.Slice(counters, func(i, j int) bool { return counters[i].Labels < counters[j].Labels })
	return counters
}

// Snapshot returns a copy of all current counter values.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	seconds := make(map[string]float64, len(r.renderSeconds))
	for labels, value := range r.renderSeconds {
		seconds[labels] = value
	}
	return Snapshot{
		RenderJobs:      sortedCounters(r.renderJobs),
		RenderSeconds:   seconds,
		ProgressUpdates: r.progressUpdates,
		TimelineOps:     sortedCounters(r.timelineOps),
		EffectsApplied:  sortedCounters(r.effectApplied),
	}
}

// Nop discards everything written into it.
type Nop struct{}

func (Nop) RecordRenderJob(string, string, float64, string) {}
func (Nop) RecordRenderProgress()                           {}
func (Nop) RecordTimelineOp(string, string)                 {}
func (Nop) RecordEffectApplication(string, string)          {}

var (
	_ Sink = (*Registry)(nil)
	_ Sink = Nop{}
)
