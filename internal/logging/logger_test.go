package logging_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"clipforge/internal/logging"
)

func TestConsoleFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "render").Info("job started", logging.String("job_id", "abc"))

	line := buf.String()
	if !strings.Contains(line, "INFO render: job started") {
		t.Fatalf("unexpected log line %q", line)
	}
	if !strings.Contains(line, "job_id=abc") {
		t.Fatalf("expected job_id attribute in %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("done", logging.String("name", "Summer Trip"))

	if !strings.Contains(buf.String(), `name="Summer Trip"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestJSONFormatUsesLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("encode failed", logging.String("reason", "missing source"))

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected lowercase level in %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"msg":"encode failed"`) {
		t.Fatalf("expected msg key in %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	if strings.Contains(buf.String(), "should be dropped") {
		t.Fatal("info line leaked through warn level")
	}
	if !strings.Contains(buf.String(), "should be kept") {
		t.Fatal("warn line missing")
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens", logging.Error(os.ErrNotExist))
}
