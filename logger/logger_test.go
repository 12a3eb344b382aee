package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDefaultLogger(t *testing.T) {
	l := NewDefaultLogger()
	if l == nil {
		t.Fatal("NewDefaultLogger() returned nil")
	}

	// Test logging methods don't panic
	l.Debug("test debug")
	l.Info("test info")
	l.Warn("test warn")
	l.Error("test error")
}

func TestLevelFiltering(t *testing.T) {
	defer SetupLogger(LogLevelInfo)

	var buf bytes.Buffer
	l := NewLogger(&buf)

	SetupLogger(LogLevelWarn)
	l.Info("hidden")
	l.Warn("shown", "type", "Answer")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record emitted at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "type=Answer") {
		t.Errorf("warn record missing: %q", out)
	}

	buf.Reset()
	SetupLogger(LogLevelNone)
	l.Error("silenced")
	if buf.Len() != 0 {
		t.Errorf("none level emitted %q", buf.String())
	}
}

func TestLogTag(t *testing.T) {
	defer SetLogTag("BOOLLIKE")

	var buf bytes.Buffer
	l := NewLogger(&buf)
	SetLogTag("test-tag")
	l.Error("tagged")

	if !strings.Contains(buf.String(), "tag=test-tag") {
		t.Errorf("record missing tag: %q", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "DEBUG", want: LogLevelDebug},
		{in: "warning", want: LogLevelWarn},
		{in: "", want: LogLevelInfo},
		{in: "none", want: LogLevelNone},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
