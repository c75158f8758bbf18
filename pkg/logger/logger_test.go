package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if err := InitWithOptions(WithFormat("xml")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithFormat("json"), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "spread ready",
		String("zone", "reef"), Int("lines", 3), Bool("cached", false), Duration("took", time.Millisecond))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if line["msg"] != "spread ready" || line["zone"] != "reef" || line["lines"] != float64(3) {
		t.Errorf("unexpected fields: %v", line)
	}
	if src, _ := line["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatal(err)
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug line missing: %q", buf.String())
	}

	if err := SetLevelString("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("engine").Info(context.Background(), "test message", String("k", "v"))
	if !strings.Contains(buf.String(), "engine.k=v") {
		t.Errorf("named group missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLoggerWithLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(WithWriter(&buf), WithLevel(slog.LevelWarn)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Info(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	Get().Warn(ctx, "catalog warning", Float64("best_score", 71.5))
	if !strings.Contains(buf.String(), "best_score=71.5") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}
