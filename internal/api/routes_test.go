package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/encoding"
	"clipforge/internal/logging"
	"clipforge/internal/metrics"
	"clipforge/internal/projects"
	"clipforge/internal/queue"
	"clipforge/internal/render"
	"clipforge/internal/testsupport"
)

type noopEncoder struct{}

func (noopEncoder) Encode(_ context.Context, req encoding.Request) error {
	return os.WriteFile(req.OutputPath, []byte("encoded"), 0o644)
}

type testServer struct {
	router   http.Handler
	projects *projects.Service
	queue    *render.Queue
	cfg      *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testsupport.NewConfig(t)

	logger := logging.NewNop()
	registry := metrics.NewRegistry()
	projectStore := projects.NewMemoryStore()
	service := projects.NewService(projectStore, cfg.Paths.UploadsDir, registry, logger)
	jobQueue := render.NewQueue(cfg, queue.NewMemoryStore(), projectStore, noopEncoder{}, registry, logger)

	router := NewRouter(ServerConfig{
		Projects:  service,
		Queue:     jobQueue,
		Registry:  registry,
		Logger:    logger,
		StartTime: time.Now(),
	})
	return &testServer{router: router, projects: service, queue: jobQueue, cfg: cfg}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope from %s %s: %v (body: %s)", method, path, err, rec.Body.String())
	}
	return rec, envelope
}

func dataField[T any](t *testing.T, envelope Envelope, out *T) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	rec, envelope := ts.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !envelope.Success {
		t.Error("health should report success")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestProjectLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec, envelope := ts.do(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Name:    "Demo",
		Quality: "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, envelope.Error)
	}
	var created struct {
		ID       string `json:"id"`
		Settings struct {
			Codec string `json:"codec"`
		} `json:"settings"`
	}
	dataField(t, envelope, &created)
	if created.ID == "" {
		t.Fatal("created project missing id")
	}
	if created.Settings.Codec != "h265" {
		t.Errorf("codec = %q, want h265 for high quality", created.Settings.Codec)
	}

	rec, _ = ts.do(t, http.MethodGet, "/api/projects/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}

	rec, envelope = ts.do(t, http.MethodGet, "/api/projects/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing project status = %d, want 404", rec.Code)
	}
	if envelope.Success {
		t.Error("error envelope should not report success")
	}
}

func TestClipAndTimelineEndpoints(t *testing.T) {
	ts := newTestServer(t)
	testsupport.WriteUpload(t, ts.cfg, "intro.mp4")

	_, envelope := ts.do(t, http.MethodPost, "/api/projects", CreateProjectRequest{Name: "Clips"})
	var project struct {
		ID string `json:"id"`
	}
	dataField(t, envelope, &project)

	rec, _ := ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/clips", AddClipRequest{FileName: "missing.mp4"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing upload status = %d, want 400", rec.Code)
	}

	rec, envelope = ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/clips", AddClipRequest{FileName: "intro.mp4"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add clip status = %d: %s", rec.Code, envelope.Error)
	}
	var clip struct {
		ID       string  `json:"id"`
		Duration float64 `json:"duration"`
	}
	dataField(t, envelope, &clip)
	if clip.Duration != 5 {
		t.Errorf("clip duration = %v, want default 5", clip.Duration)
	}

	rec, envelope = ts.do(t, http.MethodGet, "/api/projects/"+project.ID+"/timeline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline status = %d", rec.Code)
	}
	var timeline struct {
		Duration float64 `json:"duration"`
		Frames   int     `json:"frames"`
	}
	dataField(t, envelope, &timeline)
	if timeline.Duration != 5 {
		t.Errorf("timeline duration = %v, want 5", timeline.Duration)
	}
	if timeline.Frames != 150 {
		t.Errorf("timeline frames = %d, want 150 at 30fps", timeline.Frames)
	}

	rec, envelope = ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/clips/"+clip.ID+"/effects", AddEffectRequest{
		Type: "filter",
		Name: "blur",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add effect status = %d: %s", rec.Code, envelope.Error)
	}

	rec, _ = ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/clips/"+clip.ID+"/effects", AddEffectRequest{
		Type:       "filter",
		Name:       "blur",
		Parameters: map[string]any{"radius": 1000.0},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range effect status = %d, want 400", rec.Code)
	}
}

func TestRenderEndpoints(t *testing.T) {
	ts := newTestServer(t)
	testsupport.WriteUpload(t, ts.cfg, "clip.mp4")

	_, envelope := ts.do(t, http.MethodPost, "/api/projects", CreateProjectRequest{Name: "Render"})
	var project struct {
		ID string `json:"id"`
	}
	dataField(t, envelope, &project)
	if _, added := ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/clips", AddClipRequest{FileName: "clip.mp4"}); !added.Success {
		t.Fatalf("add clip failed: %s", added.Error)
	}

	rec, envelope := ts.do(t, http.MethodPost, "/api/projects/"+project.ID+"/render", RenderRequest{Format: "mov"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d, want 202: %s", rec.Code, envelope.Error)
	}
	var submitted RenderSubmitResponse
	dataField(t, envelope, &submitted)
	if submitted.JobID == "" || submitted.Status != queue.StatusPending {
		t.Fatalf("submit response = %+v, want pending job id", submitted)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ts.queue.Wait(ctx, submitted.JobID); err != nil {
		t.Fatalf("wait: %v", err)
	}

	rec, envelope = ts.do(t, http.MethodGet, "/api/render/"+submitted.JobID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("job status = %d", rec.Code)
	}
	var job struct {
		Status     string `json:"status"`
		Progress   int    `json:"progress"`
		OutputPath string `json:"outputPath"`
	}
	dataField(t, envelope, &job)
	if job.Status != "completed" || job.Progress != 100 {
		t.Errorf("job = %+v, want completed at 100", job)
	}
	if filepath.Ext(job.OutputPath) != ".mov" {
		t.Errorf("output path = %q, want .mov", job.OutputPath)
	}

	rec, _ = ts.do(t, http.MethodGet, "/api/render/", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list jobs status = %d", rec.Code)
	}
	rec, _ = ts.do(t, http.MethodGet, "/api/render/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec, envelope := ts.do(t, http.MethodGet, "/api/effects", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("effects status = %d", rec.Code)
	}
	var catalog map[string][]struct {
		Name string `json:"name"`
	}
	dataField(t, envelope, &catalog)
	if len(catalog["filter"]) == 0 {
		t.Error("expected filter definitions in the catalog")
	}

	rec, envelope = ts.do(t, http.MethodGet, "/api/formats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("formats status = %d", rec.Code)
	}
	var formats FormatsResponse
	dataField(t, envelope, &formats)
	found := false
	for _, format := range formats.Output {
		if string(format) == "mp4" {
			found = true
		}
	}
	if !found {
		t.Error("mp4 missing from output formats")
	}
	// Input containers go beyond the output enum; mkv is accepted for
	// uploads but never offered as a render target.
	inputs := make(map[string]bool, len(formats.Input))
	for _, name := range formats.Input {
		inputs[name] = true
	}
	if !inputs["mkv"] {
		t.Errorf("input formats = %v, want mkv listed", formats.Input)
	}
	if len(formats.Qualities) != 3 {
		t.Errorf("qualities = %d, want 3", len(formats.Qualities))
	}

	rec, _ = ts.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}
