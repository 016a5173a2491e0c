package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		expected string
	}{
		{"error", slog.LevelError, "ERROR"},
		{"warn", slog.LevelWarn, "WARN "},
		{"info", slog.LevelInfo, "INFO "},
		{"debug", slog.LevelDebug, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levelTag(tt.level)
			if got != tt.expected {
				t.Errorf("levelTag(%v) = %q, want %q", tt.level, got, tt.expected)
			}
		})
	}
}

func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		attr     slog.Attr
		expected string
	}{
		{
			name:     "no group",
			group:    "",
			attr:     slog.String("key", "value"),
			expected: "  key=value",
		},
		{
			name:     "with group",
			group:    "group",
			attr:     slog.String("key", "value"),
			expected: "  group.key=value",
		},
		{
			name:     "integer",
			group:    "",
			attr:     slog.Int("zones", 4),
			expected: "  zones=4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAttr(tt.group, tt.attr)
			if got != tt.expected {
				t.Errorf("formatAttr(%q, %v) = %q, want %q", tt.group, tt.attr, got, tt.expected)
			}
		})
	}
}

func TestConsoleHandlerEnabled(t *testing.T) {
	h := &consoleHandler{level: slog.LevelInfo}

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled")
	}
}

func TestConsoleHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test message", 0)
	record.AddAttrs(slog.String("key", "value"))

	err := h.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "12:00:00") {
		t.Errorf("output missing timestamp, got: %q", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("output missing level tag, got: %q", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("output missing message, got: %q", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("output missing attr, got: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("output missing trailing newline, got: %q", output)
	}
}

func TestConsoleHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "viewer")})

	if len(h.attrs) != 0 {
		t.Error("WithAttrs mutated the original handler")
	}

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "component=viewer") {
		t.Errorf("output missing preset attr, got: %q", output)
	}
}

func TestConsoleHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("camera")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.String("zone", "malta"))
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "camera.zone=malta") {
		t.Errorf("output missing group prefix, got: %q", output)
	}
}

func TestConsoleHandlerWithNestedGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("camera").WithGroup("pose")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.String("yaw", "0.5"))
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "camera.pose.yaw=0.5") {
		t.Errorf("output missing nested group prefix, got: %q", output)
	}
}

func TestNewHandlerFormats(t *testing.T) {
	tests := []struct {
		format string
		check  func(h slog.Handler) bool
	}{
		{"json", func(h slog.Handler) bool { _, ok := h.(*slog.JSONHandler); return ok }},
		{"text", func(h slog.Handler) bool { _, ok := h.(*slog.TextHandler); return ok }},
		{"console", func(h slog.Handler) bool { _, ok := h.(*consoleHandler); return ok }},
		{"", func(h slog.Handler) bool { _, ok := h.(*consoleHandler); return ok }},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			h := newHandler(Config{Level: "debug", Format: tt.format, Output: &buf})
			if !tt.check(h) {
				t.Errorf("newHandler(%q) = %T", tt.format, h)
			}
		})
	}
}

func TestConsoleHandlerRawTerminalLineEnding(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(Config{Level: "info", Output: &buf, RawTerminal: true})

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "raw", 0)
	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "raw\r\n") {
		t.Errorf("want CRLF line ending, got %q", buf.String())
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galleria.log")
	if err := Init(Config{Level: "info", Format: "console", File: path}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	WithSession("abc").Info("Zone entered", "zone", "malta")
	L().Debug("filtered")

	if err := Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Zone entered  session=abc  zone=malta") {
		t.Errorf("log file missing entry, got %q", out)
	}
	if strings.Contains(out, "filtered") {
		t.Errorf("debug record should be filtered at info, got %q", out)
	}
}

func TestInitBadFile(t *testing.T) {
	err := Init(Config{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	if err == nil {
		t.Fatal("Init() with unwritable file should fail")
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if len(a) != 36 || a == b {
		t.Errorf("session ids %q %q should be distinct uuids", a, b)
	}
}
