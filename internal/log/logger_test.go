package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestBuildLevelParsing(t *testing.T) {
	var buf bytes.Buffer
	l := build("DEBUG", "json", &buf)
	l.Debug("probe")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["msg"] != "probe" {
		t.Errorf("msg = %v, want probe", out["msg"])
	}
}

func TestBuildDefaultLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := build("bogus", "json", &buf)
	l.Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output at default INFO level, got %q", buf.String())
	}
}

func TestBuildTextFormat(t *testing.T) {
	var buf bytes.Buffer
	build("INFO", "text", &buf).Info("hello", "component", "test")

	if !strings.Contains(buf.String(), "component=test") {
		t.Errorf("text output missing component field: %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger = slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent("scanner").Info("hello")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["component"] != "scanner" {
		t.Errorf("component = %v, want scanner", out["component"])
	}
	if out["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", out["msg"])
	}
}
