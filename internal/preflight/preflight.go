// Package preflight verifies the runtime environment before the daemon
// starts serving: media directories, the encoder binary, and free disk space
// for render output.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"clipforge/internal/config"
)

// Result reports the outcome of a single preflight check. Optional checks
// report advisory failures that do not block startup.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// minimum free bytes in the renders filesystem before startup warns.
const minFreeBytes = 512 * 1024 * 1024

// RunAll executes all preflight checks for the given config.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Uploads directory", cfg.Paths.UploadsDir),
		CheckDirectoryAccess("Renders directory", cfg.Paths.RendersDir),
		CheckDirectoryAccess("Projects directory", cfg.Paths.ProjectsDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckEncoder(cfg.FFmpegBinary()),
		CheckFreeSpace("Renders free space", cfg.Paths.RendersDir, minFreeBytes),
	}
	return results
}

// Blocking reports whether any non-optional check failed.
func Blocking(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return true
		}
	}
	return false
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckEncoder looks up the ffmpeg binary. The check is optional: renders
// fall back to placeholder output when no encoder is installed.
func CheckEncoder(binary string) Result {
	const name = "FFmpeg"
	path, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s not found; renders will produce placeholder output", binary)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: path}
}

// statfs is a seam for tests.
var statfs = realStatfs

// CheckFreeSpace verifies the filesystem holding path has at least min bytes
// available. Advisory only; a full disk surfaces as failed jobs later.
func CheckFreeSpace(name, path string, min uint64) Result {
	total, free, err := statfs(path)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	detail := fmt.Sprintf("%s (%s free of %s)", path, formatBytes(free), formatBytes(total))
	if free < min {
		return Result{Name: name, Optional: true, Detail: detail + " below minimum"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: detail}
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}

func formatBytes(value uint64) string {
	const (
		kiB = 1024
		miB = kiB * 1024
		giB = miB * 1024
	)
	switch {
	case value >= giB:
		return fmt.Sprintf("%.2f GiB", float64(value)/float64(giB))
	case value >= miB:
		return fmt.Sprintf("%.2f MiB", float64(value)/float64(miB))
	case value >= kiB:
		return fmt.Sprintf("%.2f KiB", float64(value)/float64(kiB))
	default:
		return fmt.Sprintf("%d B", value)
	}
}
