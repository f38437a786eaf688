package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clipforge/internal/effects"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/metrics"
)

// Service is the sole mutation owner for project and clip data. Every write
// re-syncs the timeline duration and bumps the project's updated timestamp.
type Service struct {
	store      Store
	uploadsDir string
	sink       metrics.Sink
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a project service.
func NewService(store Store, uploadsDir string, sink metrics.Sink, logger *slog.Logger) *Service {
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Service{
		store:      store,
		uploadsDir: uploadsDir,
		sink:       sink,
		logger:     logging.WithComponent(logger, "projects"),
		now:        time.Now,
	}
}

// CreateProjectParams carries the caller-supplied fields for a new project.
// Zero values fall back to defaults: name "Untitled Project", format mp4,
// quality medium, 30 fps, 1920x1080.
type CreateProjectParams struct {
	Name        string
	Description string
	Format      string
	Quality     string
	FPS         int
	Width       int
	Height      int
}

// CreateProject builds and stores a new empty project with quality presets
// applied to its output settings.
func (s *Service) CreateProject(ctx context.Context, params CreateProjectParams) (*media.Project, error) {
	format := media.ParseFormat(params.Format)
	quality := media.ParseQuality(params.Quality)
	preset := media.PresetFor(quality)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = "Untitled Project"
	}
	fps := params.FPS
	if fps <= 0 {
		fps = 30
	}
	width, height := params.Width, params.Height
	if width <= 0 {
		width = 1920
	}
	if height <= 0 {
		height = 1080
	}

	now := s.now().UTC()
	project := &media.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: params.Description,
		Clips:       []media.Clip{},
		Timeline: media.TimelineSettings{
			FPS:        fps,
			Resolution: media.Resolution{Width: width, Height: height},
			Markers:    []media.Marker{},
		},
		Settings: media.OutputSettings{
			Format:  format,
			Quality: quality,
			Codec:   preset.Codec,
			Bitrate: preset.Bitrate,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	s.logger.Info("project created",
		logging.String(logging.FieldProjectID, project.ID),
		logging.String("format", string(format)),
		logging.String("quality", string(quality)),
	)
	return project, nil
}

// GetProject returns the project or ErrNotFound.
func (s *Service) GetProject(ctx context.Context, id string) (*media.Project, error) {
	project, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// ListProjects returns all projects.
func (s *Service) ListProjects(ctx context.Context) ([]*media.Project, error) {
	return s.store.List(ctx)
}

// CountProjects returns the number of stored projects.
func (s *Service) CountProjects(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// AddClipParams carries the caller-supplied fields for a new clip. Optional
// fields are pointers so zero is distinguishable from unset.
type AddClipParams struct {
	FileName  string
	StartTime *float64
	EndTime   *float64
	Duration  *float64
	Position  *float64
	Track     *int
}

// AddClip appends a clip to the project. The referenced source file must
// exist in the uploads directory.
func (s *Service) AddClip(ctx context.Context, projectID string, params AddClipParams) (*media.Clip, error) {
	if strings.TrimSpace(params.FileName) == "" {
		return nil, errors.New("fileName is required")
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(s.uploadsDir, params.FileName)
	if _, err := os.Stat(filePath); err != nil {
		s.sink.RecordTimelineOp("add_clip", "error")
		return nil, fmt.Errorf("clip source file not found in uploads directory: %s", params.FileName)
	}

	startTime := 0.0
	if params.StartTime != nil {
		startTime = *params.StartTime
	}
	fallbackSpan := 5.0
	if params.Duration != nil && *params.Duration > 1 {
		fallbackSpan = *params.Duration
	}
	endTime := startTime + fallbackSpan
	if params.EndTime != nil {
		endTime = *params.EndTime
	}
	position := project.Timeline.Duration
	if params.Position != nil {
		position = *params.Position
	}
	if position < 0 {
		position = 0
	}
	track := 0
	if params.Track != nil && *params.Track > 0 {
		track = *params.Track
	}

	now := s.now().UTC()
	clip := media.Clip{
		ID:        uuid.NewString(),
		FileName:  params.FileName,
		FilePath:  filePath,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  clampDuration(endTime - startTime),
		Position:  position,
		Track:     track,
		Effects:   []media.Effect{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	project.Clips = append(project.Clips, clip)
	project.UpdatedAt = now
	media.SyncDuration(project)

	if err := s.store.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	s.sink.RecordTimelineOp("add_clip", "success")
	return &clip, nil
}

// UpdateClipParams carries the mutable clip fields; nil means unchanged.
type UpdateClipParams struct {
	StartTime *float64
	EndTime   *float64
	Position  *float64
	Track     *int
}

// UpdateClip adjusts a clip's trim window and placement. Duration is always
// recomputed from the trim bounds so the trim invariant holds.
func (s *Service) UpdateClip(ctx context.Context, projectID, clipID string, params UpdateClipParams) (*media.Clip, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	clip := project.FindClip(clipID)
	if clip == nil {
		return nil, ErrClipNotFound
	}

	if params.StartTime != nil {
		clip.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		clip.EndTime = *params.EndTime
	}
	clip.Duration = clampDuration(clip.EndTime - clip.StartTime)
	if params.Position != nil {
		clip.Position = *params.Position
		if clip.Position < 0 {
			clip.Position = 0
		}
	}
	if params.Track != nil {
		clip.Track = *params.Track
		if clip.Track < 0 {
			clip.Track = 0
		}
	}

	now := s.now().UTC()
	clip.UpdatedAt = now
	project.UpdatedAt = now
	media.SyncDuration(project)

	if err := s.store.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	s.sink.RecordTimelineOp("update_clip", "success")
	return clip, nil
}

// AddEffectParams carries the caller-supplied fields for a new effect.
type AddEffectParams struct {
	Type       string
	Name       string
	Parameters map[string]any
	Enabled    *bool
}

// AddEffect appends an effect instance to a clip after validating the
// supplied parameters against the catalog definition's schema.
func (s *Service) AddEffect(ctx context.Context, projectID, clipID string, params AddEffectParams) (*media.Effect, error) {
	effectType, ok := media.ParseEffectType(params.Type)
	if !ok {
		return nil, fmt.Errorf("unknown effect type %q", params.Type)
	}
	definition, ok := effects.Find(effectType, params.Name)
	if !ok {
		return nil, ErrEffectNotFound
	}

	normalized, err := normalizeParameters(definition, params.Parameters)
	if err != nil {
		s.sink.RecordEffectApplication(string(effectType), "error")
		return nil, err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	clip := project.FindClip(clipID)
	if clip == nil {
		return nil, ErrClipNotFound
	}

	enabled := true
	if params.Enabled != nil {
		enabled = *params.Enabled
	}

	now := s.now().UTC()
	effect := media.Effect{
		ID:         uuid.NewString(),
		Type:       effectType,
		Name:       params.Name,
		Parameters: normalized,
		Enabled:    enabled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	clip.Effects = append(clip.Effects, effect)
	clip.UpdatedAt = now
	project.UpdatedAt = now

	if err := s.store.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	s.sink.RecordEffectApplication(string(effectType), "success")
	return &effect, nil
}

// UpdateEffectParams carries effect mutations; nil means unchanged.
type UpdateEffectParams struct {
	Parameters map[string]any
	Enabled    *bool
}

// UpdateEffect merges new parameter values into an existing effect and
// toggles its enabled flag. Merged values are validated against the same
// schema as at attachment time.
func (s *Service) UpdateEffect(ctx context.Context, projectID, clipID, effectID string, params UpdateEffectParams) (*media.Effect, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	clip := project.FindClip(clipID)
	if clip == nil {
		return nil, ErrClipNotFound
	}

	var effect *media.Effect
	for i := range clip.Effects {
		if clip.Effects[i].ID == effectID {
			effect = &clip.Effects[i]
			break
		}
	}
	if effect == nil {
		return nil, ErrEffectNotFound
	}

	if len(params.Parameters) > 0 {
		definition, ok := effects.Find(effect.Type, effect.Name)
		if !ok {
			return nil, ErrEffectNotFound
		}
		merged := make(map[string]any, len(effect.Parameters)+len(params.Parameters))
		for k, v := range effect.Parameters {
			merged[k] = v
		}
		for k, v := range params.Parameters {
			merged[k] = v
		}
		validated, err := normalizeParameters(definition, merged)
		if err != nil {
			return nil, err
		}
		effect.Parameters = validated
	}
	if params.Enabled != nil {
		effect.Enabled = *params.Enabled
	}

	now := s.now().UTC()
	effect.UpdatedAt = now
	project.UpdatedAt = now

	if err := s.store.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	return effect, nil
}

// Timeline returns the derived timeline for a project, persisting any
// duration growth the sync produces.
func (s *Service) Timeline(ctx context.Context, projectID string) (media.Timeline, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return media.Timeline{}, err
	}
	before := project.Timeline.Duration
	timeline := media.BuildTimeline(project)
	if project.Timeline.Duration != before {
		if err := s.store.Put(ctx, project); err != nil {
			return media.Timeline{}, fmt.Errorf("store project: %w", err)
		}
	}
	return timeline, nil
}

func clampDuration(value float64) float64 {
	if value < 0.1 {
		return 0.1
	}
	return value
}

// normalizeParameters applies defaults for missing parameters and validates
// supplied values against the schema. Unknown parameter names are ignored,
// matching the discovery-driven contract: clients send what the catalog
// advertises.
func normalizeParameters(definition effects.Definition, supplied map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(definition.Parameters))
	for _, schema := range definition.Parameters {
		value, present := supplied[schema.Name]
		if !present {
			if schema.Default != nil {
				normalized[schema.Name] = schema.Default
			}
			continue
		}
		switch schema.Kind {
		case effects.KindNumber:
			number, ok := toFloat(value)
			if !ok {
				return nil, fmt.Errorf("parameter %q: expected a number", schema.Name)
			}
			if schema.Min != nil && number < *schema.Min {
				return nil, fmt.Errorf("parameter %q: %v below minimum %v", schema.Name, number, *schema.Min)
			}
			if schema.Max != nil && number > *schema.Max {
				return nil, fmt.Errorf("parameter %q: %v above maximum %v", schema.Name, number, *schema.Max)
			}
			normalized[schema.Name] = number
		case effects.KindEnum:
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q: expected a string", schema.Name)
			}
			if !contains(schema.Options, text) {
				return nil, fmt.Errorf("parameter %q: %q is not one of %v", schema.Name, text, schema.Options)
			}
			normalized[schema.Name] = text
		case effects.KindString:
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q: expected a string", schema.Name)
			}
			normalized[schema.Name] = text
		default:
			normalized[schema.Name] = value
		}
	}
	return normalized, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
