package encoding

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg"))
	if cli.binary != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestCLIEncodeRequiresSource(t *testing.T) {
	cli := NewCLI()
	if err := cli.Encode(context.Background(), Request{OutputPath: "/tmp/out.mp4"}); err == nil {
		t.Fatal("expected error when source path is empty")
	}
}

func TestCLIEncodeRequiresOutput(t *testing.T) {
	cli := NewCLI()
	if err := cli.Encode(context.Background(), Request{SourcePath: "/media/in.mp4"}); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestMapCodec(t *testing.T) {
	cases := map[string]string{
		"h265": "libx265",
		"H265": "libx265",
		"h264": "libx264",
		"":     "libx264",
		"vp9":  "libx264",
	}
	for in, want := range cases {
		if got := MapCodec(in); got != want {
			t.Errorf("MapCodec(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCLIEncodeCommandArguments(t *testing.T) {
	var capturedArgs []string
	setHelperCommand(t, "success", &capturedArgs)

	cli := NewCLI()
	err := cli.Encode(context.Background(), Request{
		SourcePath: "/uploads/in.mp4",
		OutputPath: "/renders/out.mp4",
		Width:      1280,
		Height:     720,
		FPS:        24,
		Codec:      "h265",
	})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	if findArg(capturedArgs, "-y") == -1 {
		t.Fatalf("expected overwrite flag, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-vf"); i == -1 || capturedArgs[i+1] != "scale=1280:720" {
		t.Fatalf("expected scale filter for 1280x720, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-r"); i == -1 || capturedArgs[i+1] != "24" {
		t.Fatalf("expected frame rate 24, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-c:v"); i == -1 || capturedArgs[i+1] != "libx265" {
		t.Fatalf("expected libx265 video codec, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-c:a"); i == -1 || capturedArgs[i+1] != "aac" {
		t.Fatalf("expected aac audio codec, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-preset"); i == -1 || capturedArgs[i+1] != "veryfast" {
		t.Fatalf("expected veryfast preset, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-pix_fmt"); i == -1 || capturedArgs[i+1] != "yuv420p" {
		t.Fatalf("expected yuv420p pixel format, got %v", capturedArgs)
	}
	if capturedArgs[len(capturedArgs)-1] != "/renders/out.mp4" {
		t.Fatalf("expected output path last, got %v", capturedArgs)
	}
}

func TestCLIEncodeDefaultsDimensions(t *testing.T) {
	var capturedArgs []string
	setHelperCommand(t, "success", &capturedArgs)

	cli := NewCLI()
	err := cli.Encode(context.Background(), Request{
		SourcePath: "/uploads/in.mp4",
		OutputPath: "/renders/out.mp4",
	})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if i := findArg(capturedArgs, "-vf"); i == -1 || capturedArgs[i+1] != "scale=1920:1080" {
		t.Fatalf("expected default 1920x1080 scale, got %v", capturedArgs)
	}
	if i := findArg(capturedArgs, "-r"); i == -1 || capturedArgs[i+1] != "30" {
		t.Fatalf("expected default fps 30, got %v", capturedArgs)
	}
}

func TestCLIEncodeFailure(t *testing.T) {
	setHelperCommand(t, "failure", nil)

	cli := NewCLI()
	err := cli.Encode(context.Background(), Request{
		SourcePath: "/uploads/in.mp4",
		OutputPath: "/renders/out.mp4",
	})
	if err == nil {
		t.Fatal("expected encode failure error")
	}
}

func findArg(args []string, want string) int {
	for i, arg := range args {
		if arg == want {
			return i
		}
	}
	return -1
}

func setHelperCommand(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "failure":
		fmt.Fprintln(os.Stderr, "Conversion failed!")
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "frame=  100 fps=30 time=00:00:03.33")
		os.Exit(0)
	}
}
