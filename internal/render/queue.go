// Package render owns the asynchronous render job lifecycle: pending jobs
// move through processing and encoding to a terminal completed or failed
// state, with progress persisted at every step.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipforge/internal/config"
	"clipforge/internal/encoding"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/metrics"
	"clipforge/internal/queue"
)

// ErrProjectNotFound reports a submit against an unknown project.
var ErrProjectNotFound = errors.New("project not found")

// ErrJobNotFound reports a lookup for an unknown job id.
var ErrJobNotFound = errors.New("render job not found")

// placeholderContent is written when no real encode can run: empty projects,
// missing source files, and encoder failures all still produce an artifact.
const placeholderContent = "Simulated video render output"

// ProjectSource is the read side the queue needs from the project store.
// Get returns (nil, nil) when no project exists for the id.
type ProjectSource interface {
	Get(ctx context.Context, id string) (*media.Project, error)
}

// SubmitOptions carries per-job overrides. Empty fields fall back to the
// project's output settings.
type SubmitOptions struct {
	Format     string
	Resolution string
}

// Queue runs render jobs in the background. Each submitted job gets its own
// goroutine; the project is snapshotted at submit time so concurrent edits
// never leak into a running render.
type Queue struct {
	cfg      *config.Config
	jobs     queue.Store
	projects ProjectSource
	encoder  encoding.Client
	sink     metrics.Sink
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	done map[string]chan struct{}
}

// NewQueue constructs a render queue.
func NewQueue(cfg *config.Config, jobs queue.Store, projects ProjectSource, encoder encoding.Client, sink metrics.Sink, logger *slog.Logger) *Queue {
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Queue{
		cfg:      cfg,
		jobs:     jobs,
		projects: projects,
		encoder:  encoder,
		sink:     sink,
		logger:   logging.WithComponent(logger, "render"),
		now:      time.Now,
		done:     make(map[string]chan struct{}),
	}
}

// CreateJob snapshots the project, persists a pending job record, and starts
// processing in the background. It returns immediately with the pending job.
func (q *Queue) CreateJob(ctx context.Context, projectID string, opts SubmitOptions) (*queue.Job, error) {
	project, err := q.projects.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	snapshot := project.Clone()
	media.SyncDuration(snapshot)

	format := snapshot.Settings.Format
	if opts.Format != "" {
		format = media.ParseFormat(opts.Format)
	}
	resolution := opts.Resolution
	if resolution == "" {
		resolution = fmt.Sprintf("%dx%d", snapshot.Timeline.Resolution.Width, snapshot.Timeline.Resolution.Height)
	}
	fps := snapshot.Timeline.FPS
	if fps <= 0 {
		fps = 30
	}

	job := &queue.Job{
		ID:          uuid.NewString(),
		ProjectID:   snapshot.ID,
		Format:      format,
		Resolution:  resolution,
		Status:      queue.StatusPending,
		FramesTotal: frameTotal(snapshot.Timeline.Duration, fps),
		StartedAt:   q.now().UTC(),
	}
	if err := q.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("persist job: %w", err)
	}

	finished := make(chan struct{})
	q.mu.Lock()
	q.done[job.ID] = finished
	q.mu.Unlock()

	q.logger.Info("render job submitted",
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldProjectID, job.ProjectID),
		logging.String("format", string(job.Format)),
		logging.String("resolution", job.Resolution),
		logging.Int("frames_total", job.FramesTotal),
	)

	go func() {
		defer close(finished)
		q.process(job.Clone(), snapshot, fps)
	}()

	return job.Clone(), nil
}

// GetJob returns the current job snapshot or ErrJobNotFound.
func (q *Queue) GetJob(ctx context.Context, id string) (*queue.Job, error) {
	job, err := q.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ListJobs returns all job snapshots, newest first.
func (q *Queue) ListJobs(ctx context.Context) ([]*queue.Job, error) {
	return q.jobs.List(ctx)
}

// Wait blocks until the job finishes or the context expires. A job the queue
// is not actively running returns immediately.
func (q *Queue) Wait(ctx context.Context, id string) error {
	q.mu.Lock()
	finished, ok := q.done[id]
	q.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// frameTotal mirrors the frame estimate used by job progress: a sub-frame
// timeline falls back to one second of frames, and the result is never zero.
func frameTotal(duration float64, fps int) int {
	frames := int(math.Round(duration * float64(fps)))
	if frames == 0 {
		frames = fps
	}
	if frames < 1 {
		frames = 1
	}
	return frames
}

// process drives a single job to a terminal state. It runs detached from the
// submitting request so client disconnects never abandon a render.
func (q *Queue) process(job *queue.Job, project *media.Project, fps int) {
	ctx := context.Background()
	logger := q.logger.With(
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldProjectID, job.ProjectID),
	)

	job.Status = queue.StatusProcessing
	if err := q.save(ctx, logger, job); err != nil {
		return
	}
	q.sink.RecordRenderJob(string(job.Format), job.Resolution, 0, string(job.Status))
	logger.Info("render job processing")

	steps := q.cfg.Render.ProgressSteps
	if steps <= 0 {
		steps = 1
	}
	delay := q.cfg.StepDelay()
	for step := 1; step <= steps; step++ {
		time.Sleep(delay)
		job.Progress = int(math.Round(float64(step) / float64(steps) * 100))
		job.FramesRendered = int(math.Round(float64(job.Progress) / 100 * float64(job.FramesTotal)))
		if err := q.save(ctx, logger, job); err != nil {
			return
		}
		q.sink.RecordRenderProgress()
	}

	outputPath, err := q.renderOutput(ctx, logger, job, project, fps)
	now := q.now().UTC()
	if err != nil {
		job.SetFailed(err.Error(), now)
		logger.Error("render job failed", logging.Error(err))
	} else {
		job.OutputPath = outputPath
		job.SetCompleted(now)
		logger.Info("render job completed", logging.String("output", outputPath))
	}
	if saveErr := q.save(ctx, logger, job); saveErr != nil {
		return
	}
	q.sink.RecordRenderJob(string(job.Format), job.Resolution, now.Sub(job.StartedAt).Seconds(), string(job.Status))
}

// renderOutput produces the job artifact. Missing sources, empty projects,
// and encoder failures all fall back to a placeholder artifact; only a
// failure to create or write into the renders directory is fatal.
func (q *Queue) renderOutput(ctx context.Context, logger *slog.Logger, job *queue.Job, project *media.Project, fps int) (string, error) {
	rendersDir := q.cfg.Paths.RendersDir
	if err := os.MkdirAll(rendersDir, 0o755); err != nil {
		return "", fmt.Errorf("create renders directory: %w", err)
	}
	name := fmt.Sprintf("%s-%d.%s", job.ProjectID, q.now().UnixMilli(), job.Format)
	outputPath := filepath.Join(rendersDir, name)

	if len(project.Clips) == 0 {
		logger.Warn("project has no clips, writing placeholder output")
		return outputPath, writePlaceholder(outputPath)
	}
	clip := project.Clips[0]
	sourcePath := clip.FilePath
	if sourcePath == "" {
		sourcePath = filepath.Join(q.cfg.Paths.UploadsDir, clip.FileName)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		logger.Warn("source file missing, writing placeholder output",
			logging.String("source", sourcePath))
		return outputPath, writePlaceholder(outputPath)
	}

	job.Status = queue.StatusEncoding
	if err := q.save(ctx, logger, job); err != nil {
		return "", err
	}

	err := q.encoder.Encode(ctx, encoding.Request{
		SourcePath:  sourcePath,
		OutputPath:  outputPath,
		Width:       project.Timeline.Resolution.Width,
		Height:      project.Timeline.Resolution.Height,
		FPS:         fps,
		Codec:       project.Settings.Codec,
		AudioCodec:  q.cfg.Render.AudioCodec,
		Preset:      q.cfg.Render.Preset,
		PixelFormat: q.cfg.Render.PixelFormat,
	})
	if err != nil {
		logger.Warn("encoder unavailable, writing placeholder output", logging.Error(err))
		return outputPath, writePlaceholder(outputPath)
	}
	return outputPath, nil
}

func (q *Queue) save(ctx context.Context, logger *slog.Logger, job *queue.Job) error {
	if err := q.jobs.Save(ctx, job); err != nil {
		logger.Error("failed to persist job state", logging.Error(err))
		return err
	}
	return nil
}

func writePlaceholder(path string) error {
	if err := os.WriteFile(path, []byte(placeholderContent), 0o644); err != nil {
		return fmt.Errorf("write placeholder output: %w", err)
	}
	return nil
}
