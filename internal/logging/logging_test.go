package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"Info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownLevel) {
				t.Errorf("err = %v, want ErrUnknownLevel", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func fixedLogger(level Level, buf *bytes.Buffer) *Logger {
	l := New(level)
	l.SetOutput(buf)
	l.sink.now = func() time.Time { return time.Date(2024, 1, 1, 21, 5, 9, 0, time.UTC) }
	return l
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(LevelWarn, &buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	want := "21:05:09.000 [WARN] shown 3\n21:05:09.000 [ERROR] shown 4\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	l.SetLevel(LevelDebug)
	if !l.Enabled(LevelDebug) {
		t.Error("Enabled(LevelDebug) = false after SetLevel(LevelDebug)")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(LevelInfo, &buf)
	cat := root.With("catalog")
	hyg := cat.With("hyg")

	cat.Info("loaded %d stars", 5067)
	hyg.Warn("skipped row")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "[INFO] catalog: loaded 5067 stars") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[WARN] catalog.hyg: skipped row") {
		t.Errorf("line 1 = %q", lines[1])
	}

	root.SetLevel(LevelError)
	hyg.Warn("now hidden")
	if strings.Contains(buf.String(), "now hidden") {
		t.Error("derived logger ignores the shared level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger reports LevelError enabled")
	}
}
