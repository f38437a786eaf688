// Package encoding wraps the external ffmpeg encoder behind a small client
// interface so the render queue can fall back to placeholder output when no
// encoder is available.
package encoding

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Request describes one encode invocation.
type Request struct {
	SourcePath  string
	OutputPath  string
	Width       int
	Height      int
	FPS         int
	Codec       string
	AudioCodec  string
	Preset      string
	PixelFormat string
}

// Client defines encoder behaviour.
type Client interface {
	Encode(ctx context.Context, req Request) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// MapCodec translates a quality-preset codec name into the ffmpeg encoder
// library. h265 selects libx265; everything else encodes h264.
func MapCodec(codec string) string {
	if strings.EqualFold(strings.TrimSpace(codec), "h265") {
		return "libx265"
	}
	return "libx264"
}

// Encode runs ffmpeg over the request's source file. Output container is
// derived from the output path extension.
func (c *CLI) Encode(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.SourcePath) == "" {
		return errors.New("source path required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, c.args(req)...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if len(detail) > 512 {
			detail = detail[len(detail)-512:]
		}
		if detail != "" {
			return fmt.Errorf("ffmpeg encode failed: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}

func (c *CLI) args(req Request) []string {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = 1920
	}
	if height <= 0 {
		height = 1080
	}
	fps := req.FPS
	if fps <= 0 {
		fps = 30
	}
	preset := req.Preset
	if preset == "" {
		preset = "veryfast"
	}
	pixelFormat := req.PixelFormat
	if pixelFormat == "" {
		pixelFormat = "yuv420p"
	}
	audioCodec := req.AudioCodec
	if audioCodec == "" {
		audioCodec = "aac"
	}
	return []string{
		"-y",
		"-i", req.SourcePath,
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-r", strconv.Itoa(fps),
		"-c:v", MapCodec(req.Codec),
		"-c:a", audioCodec,
		"-preset", preset,
		"-pix_fmt", pixelFormat,
		req.OutputPath,
	}
}

var _ Client = (*CLI)(nil)
