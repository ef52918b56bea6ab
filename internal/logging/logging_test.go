package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	l.Debug().Msg("dbg")
	l.Info().Msg("visible-line")
	out := buf.String()
	if strings.Contains(out, "\"dbg\"") || !strings.Contains(out, "visible-line") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSetLogger(t *testing.T) {
	prev := *Logger()
	defer SetLogger(prev)
	var buf bytes.Buffer
	SetLogger(New(&buf, "debug"))
	Logger().Debug().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("logger not replaced: %q", buf.String())
	}
}
