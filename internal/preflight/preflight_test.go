package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Test directory", dir)
	if !result.Passed {
		t.Errorf("expected pass for writable directory: %s", result.Detail)
	}

	result = CheckDirectoryAccess("Test directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Error("expected failure for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Test directory", file)
	if result.Passed {
		t.Error("expected failure for non-directory path")
	}
}

func TestCheckEncoderMissingIsOptional(t *testing.T) {
	result := CheckEncoder("definitely-not-a-real-binary")
	if result.Passed {
		t.Error("expected failure for missing binary")
	}
	if !result.Optional {
		t.Error("encoder check must be advisory")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	original := statfs
	statfs = func(string) (uint64, uint64, error) {
		return 100 * 1024 * 1024 * 1024, 10 * 1024 * 1024 * 1024, nil
	}
	t.Cleanup(func() { statfs = original })

	result := CheckFreeSpace("Free space", "/renders", 1024)
	if !result.Passed {
		t.Errorf("expected pass with 10 GiB free: %s", result.Detail)
	}

	statfs = func(string) (uint64, uint64, error) {
		return 100 * 1024, 10 * 1024, nil
	}
	result = CheckFreeSpace("Free space", "/renders", minFreeBytes)
	if result.Passed {
		t.Error("expected advisory failure below minimum")
	}
	if !result.Optional {
		t.Error("free space check must not block startup")
	}

	statfs = func(string) (uint64, uint64, error) {
		return 0, 0, errors.New("no such filesystem")
	}
	result = CheckFreeSpace("Free space", "/renders", 1024)
	if result.Passed {
		t.Error("expected failure when statfs errors")
	}
}

func TestRunAllAndBlocking(t *testing.T) {
	defaults := config.Default()
	cfg := &defaults
	base := t.TempDir()
	cfg.Paths.UploadsDir = filepath.Join(base, "uploads")
	cfg.Paths.RendersDir = filepath.Join(base, "renders")
	cfg.Paths.ProjectsDir = filepath.Join(base, "projects")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 6 {
		t.Fatalf("results = %d, want 6", len(results))
	}
	if Blocking(results) {
		for _, result := range results {
			if !result.Passed && !result.Optional {
				t.Errorf("unexpected blocking failure: %s: %s", result.Name, result.Detail)
			}
		}
	}

	// A missing directory blocks startup.
	if err := os.RemoveAll(cfg.Paths.UploadsDir); err != nil {
		t.Fatalf("remove uploads: %v", err)
	}
	results = RunAll(context.Background(), cfg)
	if !Blocking(results) {
		t.Error("expected blocking failure with missing uploads directory")
	}
}
