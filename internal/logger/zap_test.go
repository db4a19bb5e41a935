package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.DebugLevel,
		"":        zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleCore_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := zap.New(newConsoleCore(zapcore.WarnLevel, zapcore.AddSync(&buf))).Sugar()

	log.Infow("tare_applied", "channel", "main")
	log.Warnw("notification_append_failed", "err", "down")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "tare_applied") {
		t.Fatalf("info line leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "notification_append_failed") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(InfoLevel)
	b := Get(DebugLevel)
	if a != b {
		t.Fatalf("expected the same instance")
	}
}
