// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test
// and render pacing fast enough for job lifecycle tests.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.UploadsDir = filepath.Join(base, "uploads")
	cfgVal.Paths.RendersDir = filepath.Join(base, "renders")
	cfgVal.Paths.ProjectsDir = filepath.Join(base, "projects")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Render.ProgressSteps = 2
	cfgVal.Render.StepDelayMS = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithProgressSteps overrides the render step count.
func WithProgressSteps(steps int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.ProgressSteps = steps
	}
}

// WithStepDelay overrides the per-step delay in milliseconds.
func WithStepDelay(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.StepDelayMS = ms
	}
}

// WithStubbedFFmpeg writes a stub ffmpeg executable that copies nothing and
// touches its final argument, and points the config at it.
func WithStubbedFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "ffmpeg")
		script := []byte("#!/bin/sh\nfor arg; do last=\"$arg\"; done\necho encoded > \"$last\"\nexit 0\n")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub ffmpeg: %v", err)
		}
		b.cfg.Render.FFmpegBinary = target
	}
}

// WriteUpload places a small source file into the uploads directory and
// returns its path.
func WriteUpload(t testing.TB, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.UploadsDir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write upload %s: %v", name, err)
	}
	return path
}
