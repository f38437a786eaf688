package media

import "time"

// Resolution is a pixel frame size.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Marker is a labeled position on the project timeline.
type Marker struct {
	Label    string  `json:"label"`
	Position float64 `json:"position"`
}

// TimelineSettings carries the frame-rate-aware timeline configuration of a project.
type TimelineSettings struct {
	Duration   float64    `json:"duration"`
	FPS        int        `json:"fps"`
	Resolution Resolution `json:"resolution"`
	Markers    []Marker   `json:"markers"`
}

// OutputSettings captures the requested output container and quality tier.
type OutputSettings struct {
	Format  Format  `json:"format"`
	Quality Quality `json:"quality"`
	Codec   string  `json:"codec"`
	Bitrate string  `json:"bitrate"`
}

// Effect is a named, parameterized transformation attached to a clip.
// Effects are appended in order and never implicitly reordered; disabling one
// keeps it in the list but excludes it from enabled-effect counts.
type Effect struct {
	ID         string         `json:"id"`
	Type       EffectType     `json:"type"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
	Enabled    bool           `json:"enabled"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// EffectType partitions the effect catalog.
type EffectType string

const (
	EffectFilter     EffectType = "filter"
	EffectTransition EffectType = "transition"
	EffectText       EffectType = "text"
	EffectAudio      EffectType = "audio"
)

// ParseEffectType converts a string into a known EffectType.
func ParseEffectType(value string) (EffectType, bool) {
	switch EffectType(value) {
	case EffectFilter, EffectTransition, EffectText, EffectAudio:
		return EffectType(value), true
	default:
		return "", false
	}
}

// Clip is a trimmed, positioned reference to a source media file.
type Clip struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	FilePath  string    `json:"filePath"`
	Duration  float64   `json:"duration"`
	StartTime float64   `json:"startTime"`
	EndTime   float64   `json:"endTime"`
	Position  float64   `json:"position"`
	Track     int       `json:"track"`
	Effects   []Effect  `json:"effects"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnabledEffects counts the clip's active effects.
func (c *Clip) EnabledEffects() int {
	count := 0
	for _, effect := range c.Effects {
		if effect.Enabled {
			count++
		}
	}
	return count
}

// Project identifies a video edit: its clips, timeline, and output settings.
type Project struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Clips       []Clip           `json:"clips"`
	Timeline    TimelineSettings `json:"timeline"`
	Settings    OutputSettings   `json:"settings"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Clone returns a deep copy. The render queue snapshots projects at job
// creation so in-flight edits never leak into a running job.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Timeline.Markers = append([]Marker(nil), p.Timeline.Markers...)
	cp.Clips = make([]Clip, len(p.Clips))
	for i, clip := range p.Clips {
		cloned := clip
		cloned.Effects = make([]Effect, len(clip.Effects))
		for j, effect := range clip.Effects {
			effectCopy := effect
			if effect.Parameters != nil {
				effectCopy.Parameters = make(map[string]any, len(effect.Parameters))
				for k, v := range effect.Parameters {
					effectCopy.Parameters[k] = v
				}
			}
			cloned.Effects[j] = effectCopy
		}
		cp.Clips[i] = cloned
	}
	return &cp
}

// FindClip returns the clip with the given id, or nil.
func (p *Project) FindClip(id string) *Clip {
	for i := range p.Clips {
		if p.Clips[i].ID == id {
			return &p.Clips[i]
		}
	}
	return nil
}
