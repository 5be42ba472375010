package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"debug":   zapcore.DebugLevel,
		"verbose": defaultZapLevel,
	}
	for in, want := range tests {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewAndNop(t *testing.T) {
	for _, format := range []string{FormatConsole, FormatJSON, "yaml"} {
		if l := New(InfoLevel, format); l == nil || l.SugaredLogger == nil {
			t.Fatalf("New(%q) returned nil logger", format)
		}
	}
	l := Nop().With("component", "test")
	l.Infow("discarded", "k", "v")
}
