package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewStreamLogger(&buf, LevelWarn)

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warn("this one shows", String("shard", "A"))

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("filtered levels leaked into output: %q", out)
	}
	if !strings.Contains(out, "this one shows") || !strings.Contains(out, "shard=A") {
		t.Errorf("expected warn line with field, got %q", out)
	}
}

func TestNullLoggerDoesNotPanic(t *testing.T) {
	SetLogger(nil)
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop", Err(nil))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"warn":    LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}
