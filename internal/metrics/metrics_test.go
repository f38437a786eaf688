package metrics_test

import (
	"testing"

	"clipforge/internal/metrics"
)

func TestRegistryCountsByLabels(t *testing.T) {
	registry := metrics.NewRegistry()
	registry.RecordRenderJob("mp4", "1920x1080", 0, "processing")
	registry.RecordRenderJob("mp4", "1920x1080", 10, "success")
	registry.RecordRenderJob("mov", "1280x720", 4, "error")
	registry.RecordRenderProgress()
	registry.RecordRenderProgress()
	registry.RecordTimelineOp("add_clip", "success")
	registry.RecordEffectApplication("filter", "success")

	snap := registry.Snapshot()
	if snap.ProgressUpdates != 2 {
		t.Fatalf("progress updates = %d, want 2", snap.ProgressUpdates)
	}
	if len(snap.RenderJobs) != 3 {
		t.Fatalf("render job counters = %d, want 3", len(snap.RenderJobs))
	}
	if snap.RenderSeconds["mp4|1920x1080"] != 10 {
		t.Fatalf("render seconds = %v", snap.RenderSeconds)
	}
	if len(snap.TimelineOps) != 1 || snap.TimelineOps[0].Value != 1 {
		t.Fatalf("timeline ops = %+v", snap.TimelineOps)
	}
	if len(snap.EffectsApplied) != 1 {
		t.Fatalf("effects applied = %+v", snap.EffectsApplied)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	registry := metrics.NewRegistry()
	registry.RecordRenderJob("mp4", "1920x1080", 1, "success")
	snap := registry.Snapshot()
	snap.RenderSeconds["mp4|1920x1080"] = 999

	if registry.Snapshot().RenderSeconds["mp4|1920x1080"] != 1 {
		t.Fatal("snapshot shares state with registry")
	}
}
