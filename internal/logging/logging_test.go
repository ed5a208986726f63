package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{"", log.WarnLevel, false},
		{"warning", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.WarnLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if _, err := ParseFormatter("yaml"); err == nil {
		t.Fatal("expected error for unknown formatter")
	}
	got, err := ParseFormatter("json")
	if err != nil || got != log.JSONFormatter {
		t.Fatalf("ParseFormatter(json): got %v, %v", got, err)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Format: "logfmt", Prefix: "yap"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "path", "data/tasks.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "data/tasks.txt") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, Options{Level: "nope"}); err == nil {
		t.Fatal("expected error for bad level")
	}
}

func TestNewReportsTimestampWhenAsked(t *testing.T) {
	for _, stamped := range []bool{false, true} {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Level: "warn", Format: "logfmt", ReportTimestamp: stamped})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		logger.Warn("tick")
		if got := strings.Contains(buf.String(), "time="); got != stamped {
			t.Errorf("ReportTimestamp=%t: output %q", stamped, buf.String())
		}
	}
}
