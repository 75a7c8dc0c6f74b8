package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("fee computed", zap.String("provider", "aws-sqs"))
	logger.Debug("hidden")
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["provider"] != "aws-sqs" {
		t.Errorf("missing field, got %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp key")
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "chatty", Format: "console"}, &buf)

	logger.Debug("dropped")
	logger.Info("kept")
	_ = logger.Sync()

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestReplaceRestores(t *testing.T) {
	original := Logger
	restore := Replace(zap.NewNop())
	if Logger == original {
		t.Fatal("logger not replaced")
	}
	restore()
	if Logger != original {
		t.Fatal("logger not restored")
	}
}

func TestInitializeClosesPreviousFile(t *testing.T) {
	t.Cleanup(InitializeDefault)
	dir := t.TempDir()

	if err := Initialize(Config{Level: "info", Output: filepath.Join(dir, "first.log")}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	first, ok := sink.(*os.File)
	if !ok {
		t.Fatalf("expected a file sink, got %T", sink)
	}

	if err := SetLevel(Config{Output: filepath.Join(dir, "second.log")}, "debug"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	if _, err := first.Write([]byte("late\n")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("previous log file still open, write error = %v", err)
	}

	Debug("after switch")
	Sync()
	data, err := os.ReadFile(filepath.Join(dir, "second.log"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "after switch") {
		t.Errorf("debug entry missing from new file: %q", data)
	}

	InitializeDefault()
	if sink != nil {
		t.Errorf("stderr output should not keep a file sink, got %T", sink)
	}
}
