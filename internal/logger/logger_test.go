package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	tests := []struct {
		name     string
		fn       func()
		expected []string
	}{
		{
			name:     "Info",
			fn:       func() { l.Info("test message") },
			expected: []string{"level=INFO", `msg="test message"`},
		},
		{
			name:     "Warn",
			fn:       func() { l.Warn("warning message") },
			expected: []string{"level=WARN", `msg="warning message"`},
		},
		{
			name:     "Error",
			fn:       func() { l.Error("error message") },
			expected: []string{"level=ERROR", `msg="error message"`},
		},
		{
			name:     "Debug",
			fn:       func() { l.Debug("debug message") },
			expected: []string{"level=DEBUG", `msg="debug message"`},
		},
		{
			name:     "Info with args",
			fn:       func() { l.Info("test %s=%d", "count", 42) },
			expected: []string{"level=INFO", `msg="test count=42"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			got := strings.TrimSpace(buf.String())
			for _, want := range tt.expected {
				if !strings.Contains(got, want) {
					t.Errorf("got %q, want it to contain %q", got, want)
				}
			}
		})
	}
}

func TestDebugSuppressed(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}

	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("info record missing: %q", buf.String())
	}
}

func TestDefault(t *testing.T) {
	if Default == nil {
		t.Error("Default logger should not be nil")
	}
	if Discard == nil {
		t.Error("Discard logger should not be nil")
	}

	Discard.Info("test")
}
