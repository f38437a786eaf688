package queue_test

import (
	"context"
	"testing"
	"time"

	"clipforge/internal/media"
	"clipforge/internal/queue"
	"clipforge/internal/testsupport"
)

func newJob(id string, started time.Time) *queue.Job {
	return &queue.Job{
		ID:          id,
		ProjectID:   "proj-1",
		Format:      media.FormatMP4,
		Resolution:  "1920x1080",
		Status:      queue.StatusPending,
		FramesTotal: 120,
		StartedAt:   started,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := queue.NewMemoryStore()
	ctx := context.Background()

	job := newJob("a", time.Now().UTC())
	if err := store.Save(ctx, job); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the original must not affect the stored snapshot.
	job.Status = queue.StatusFailed

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Status != queue.StatusPending {
		t.Fatalf("stored snapshot affected by caller mutation: %+v", got)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := queue.NewMemoryStore()
	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing job, got %+v", got)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := queue.NewMemoryStore()
	ctx := context.Background()
	base := time.Now().UTC()

	if err := store.Save(ctx, newJob("old", base.Add(-time.Hour))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, newJob("new", base)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	jobs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != "new" || jobs[1].ID != "old" {
		t.Fatalf("unexpected order: %+v", jobs)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := queue.OpenSQLite(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	job := newJob("a", time.Now().UTC())
	if err := store.Save(ctx, job); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ended := time.Now().UTC()
	job.Status = queue.StatusCompleted
	job.Progress = 100
	job.FramesRendered = job.FramesTotal
	job.OutputPath = "/tmp/out.mp4"
	job.EndedAt = &ended
	if err := store.Save(ctx, job); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("job missing after save")
	}
	if got.Status != queue.StatusCompleted || got.Progress != 100 {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.OutputPath != "/tmp/out.mp4" {
		t.Fatalf("output path = %q", got.OutputPath)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(ended) {
		t.Fatalf("ended at = %v, want %v", got.EndedAt, ended)
	}

	missing, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing job, got %+v", missing)
	}
}

func TestStatusHelpers(t *testing.T) {
	if status, ok := queue.ParseStatus(" Completed "); !ok || status != queue.StatusCompleted {
		t.Fatalf("ParseStatus = %v, %v", status, ok)
	}
	if _, ok := queue.ParseStatus("paused"); ok {
		t.Fatal("unknown status accepted")
	}
	if !queue.StatusFailed.Terminal() || queue.StatusEncoding.Terminal() {
		t.Fatal("terminal classification wrong")
	}
	for _, status := range queue.AllStatuses() {
		if _, ok := queue.ParseStatus(string(status)); !ok {
			t.Fatalf("status %q does not round-trip", status)
		}
	}
}
