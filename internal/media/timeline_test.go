package media_test

import (
	"testing"

	"clipforge/internal/media"
)

func sampleProject(clips ...media.Clip) *media.Project {
	return &media.Project{
		ID:    "proj-1",
		Name:  "Demo",
		Clips: clips,
		Timeline: media.TimelineSettings{
			FPS:        30,
			Resolution: media.Resolution{Width: 1920, Height: 1080},
		},
		Settings: media.OutputSettings{Format: media.FormatMP4, Quality: media.QualityMedium},
	}
}

func TestSyncDurationCoversFurthestClip(t *testing.T) {
	project := sampleProject(
		media.Clip{ID: "a", Position: 0, Duration: 4},
		media.Clip{ID: "b", Position: 3, Duration: 5},
	)
	media.SyncDuration(project)
	if project.Timeline.Duration != 8 {
		t.Fatalf("duration = %v, want 8", project.Timeline.Duration)
	}
}

func TestSyncDurationNeverShrinks(t *testing.T) {
	project := sampleProject(media.Clip{ID: "a", Position: 0, Duration: 2})
	project.Timeline.Duration = 10
	media.SyncDuration(project)
	if project.Timeline.Duration != 10 {
		t.Fatalf("duration shrank to %v", project.Timeline.Duration)
	}
}

func TestBuildTimelineZeroClips(t *testing.T) {
	project := sampleProject()
	timeline := media.BuildTimeline(project)
	if timeline.Duration != 0 {
		t.Fatalf("duration = %v, want 0", timeline.Duration)
	}
	if timeline.Frames != 1 {
		t.Fatalf("frames = %d, want 1", timeline.Frames)
	}
	if len(timeline.Tracks) != 0 {
		t.Fatalf("tracks = %d, want 0", len(timeline.Tracks))
	}
}

func TestBuildTimelineGroupsAndSortsTracks(t *testing.T) {
	clipA := media.Clip{ID: "a", FileName: "a.mp4", Position: 0, Duration: 4, Track: 1}
	clipB := media.Clip{ID: "b", FileName: "b.mp4", Position: 1, Duration: 2, Track: 0, Effects: []media.Effect{
		{Name: "brightness", Enabled: true},
		{Name: "blur", Enabled: false},
	}}
	clipC := media.Clip{ID: "c", FileName: "c.mp4", Position: 2, Duration: 1, Track: 0}

	timeline := media.BuildTimeline(sampleProject(clipA, clipB, clipC))

	if timeline.Frames != 120 {
		t.Fatalf("frames = %d, want 120", timeline.Frames)
	}
	if len(timeline.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(timeline.Tracks))
	}
	if timeline.Tracks[0].Track != 0 || timeline.Tracks[1].Track != 1 {
		t.Fatalf("tracks not in ascending order: %+v", timeline.Tracks)
	}
	track0 := timeline.Tracks[0]
	if len(track0.Clips) != 2 || track0.Clips[0].ID != "b" || track0.Clips[1].ID != "c" {
		t.Fatalf("track 0 clips not in store order: %+v", track0.Clips)
	}
	if track0.Clips[0].EnabledEffects != 1 {
		t.Fatalf("enabled effects = %d, want 1", track0.Clips[0].EnabledEffects)
	}
	if track0.Clips[0].End != 3 {
		t.Fatalf("clip b end = %v, want 3", track0.Clips[0].End)
	}
}

func TestBuildTimelineSortsMarkers(t *testing.T) {
	project := sampleProject()
	project.Timeline.Markers = []media.Marker{
		{Label: "outro", Position: 9},
		{Label: "intro", Position: 0},
	}
	timeline := media.BuildTimeline(project)
	if timeline.Markers[0].Label != "intro" || timeline.Markers[1].Label != "outro" {
		t.Fatalf("markers not sorted: %+v", timeline.Markers)
	}
}

func TestCloneIsDeep(t *testing.T) {
	project := sampleProject(media.Clip{ID: "a", Position: 0, Duration: 4, Effects: []media.Effect{
		{ID: "e1", Name: "blur", Enabled: true, Parameters: map[string]any{"radius": 8.0}},
	}})
	clone := project.Clone()

	project.Clips[0].Effects[0].Parameters["radius"] = 64.0
	project.Clips[0].Position = 99

	if clone.Clips[0].Effects[0].Parameters["radius"] != 8.0 {
		t.Fatal("clone shares effect parameters with original")
	}
	if clone.Clips[0].Position != 0 {
		t.Fatal("clone shares clip data with original")
	}
}

func TestParseFormatAndQualityFallbacks(t *testing.T) {
	if got := media.ParseFormat("MOV"); got != media.FormatMOV {
		t.Fatalf("ParseFormat(MOV) = %v", got)
	}
	if got := media.ParseFormat("mpeg2"); got != media.FormatMP4 {
		t.Fatalf("ParseFormat(mpeg2) = %v, want mp4 fallback", got)
	}
	if got := media.ParseQuality("HIGH"); got != media.QualityHigh {
		t.Fatalf("ParseQuality(HIGH) = %v", got)
	}
	if got := media.ParseQuality("ultra"); got != media.QualityMedium {
		t.Fatalf("ParseQuality(ultra) = %v, want medium fallback", got)
	}
	if preset := media.PresetFor(media.QualityHigh); preset.Codec != "h265" || preset.Bitrate != "6000k" {
		t.Fatalf("high preset = %+v", preset)
	}
}

func TestDisplayName(t *testing.T) {
	if got := media.DisplayName("summer_trip-final.mp4"); got != "Summer Trip Final" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := media.DisplayName(""); got != "Untitled Project" {
		t.Fatalf("DisplayName empty = %q", got)
	}
}
