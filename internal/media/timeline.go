package media

import (
	"math"
	"sort"
)

// Timeline is the derived, renderable arrangement of a project's clips.
type Timeline struct {
	Duration   float64    `json:"duration"`
	FPS        int        `json:"fps"`
	Frames     int        `json:"frames"`
	Resolution Resolution `json:"resolution"`
	Markers    []Marker   `json:"markers"`
	Tracks     []Track    `json:"tracks"`
}

// Track groups the clips placed on one numbered track.
type Track struct {
	Track int            `json:"track"`
	Clips []TimelineClip `json:"clips"`
}

// TimelineClip is the per-clip slice of the derived timeline.
type TimelineClip struct {
	ID             string  `json:"id"`
	FileName       string  `json:"fileName"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Duration       float64 `json:"duration"`
	EnabledEffects int     `json:"enabledEffects"`
}

func clipSpan(clips []Clip) float64 {
	span := 0.0
	for _, clip := range clips {
		if end := clip.Position + clip.Duration; end > span {
			span = end
		}
	}
	return span
}

// SyncDuration recomputes the project's timeline duration as a high-water
// mark: it grows to cover the furthest clip end but never shrinks, so
// removing a clip does not retract the timeline.
func SyncDuration(project *Project) {
	if span := clipSpan(project.Clips); span > project.Timeline.Duration {
		project.Timeline.Duration = span
	}
}

// FrameCount converts a duration and frame rate into a whole frame count,
// never less than one so downstream progress math cannot divide by zero.
func FrameCount(duration float64, fps int) int {
	frames := int(math.Round(duration * float64(fps)))
	if frames < 1 {
		return 1
	}
	return frames
}

// BuildTimeline derives the renderable timeline description for a project.
// Clips are grouped by track number with tracks in ascending order; clips
// within a track keep store order. Only enabled effects are counted.
func BuildTimeline(project *Project) Timeline {
	SyncDuration(project)

	byTrack := make(map[int][]TimelineClip)
	for _, clip := range project.Clips {
		byTrack[clip.Track] = append(byTrack[clip.Track], TimelineClip{
			ID:             clip.ID,
			FileName:       clip.FileName,
			Start:          clip.Position,
			End:            clip.Position + clip.Duration,
			Duration:       clip.Duration,
			EnabledEffects: (&clip).EnabledEffects(),
		})
	}

	trackNumbers := make([]int, 0, len(byTrack))
	for number := range byTrack {
		trackNumbers = append(trackNumbers, number)
	}
	sort.Ints(trackNumbers)

	tracks := make([]Track, 0, len(trackNumbers))
	for _, number := range trackNumbers {
		tracks = append(tracks, Track{Track: number, Clips: byTrack[number]})
	}

	markers := append([]Marker(nil), project.Timeline.Markers...)
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Position < markers[j].Position
	})

	return Timeline{
		Duration:   project.Timeline.Duration,
		FPS:        project.Timeline.FPS,
		Frames:     FrameCount(project.Timeline.Duration, project.Timeline.FPS),
		Resolution: project.Timeline.Resolution,
		Markers:    markers,
		Tracks:     tracks,
	}
}
