package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigAppliesFlagsOverEnv(t *testing.T) {
	t.Setenv("MODAL_USERNAME", "manto")
	t.Setenv("IFWRAP_TONE", "gumshoe")
	t.Setenv("IFWRAP_LOG_POLL_INTERVAL", "250ms")

	cfg, err := parseConfig([]string{"-dev", "-game", "lostpig.z8"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Game != "lostpig.z8" || cfg.Tone != "gumshoe" {
		t.Fatalf("unexpected selection: %+v", cfg)
	}
	if cfg.LogPollInterval != time.Second {
		t.Fatalf("expected poll interval clamped to 1s, got %s", cfg.LogPollInterval)
	}
	url, err := cfg.BaseURL()
	if err != nil {
		t.Fatalf("base url: %v", err)
	}
	if url != "https://manto--llm-text-adv-web-dev.modal.run" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	if _, err := parseConfig([]string{"-no-such-flag"}); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
}

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifwrap.log")
	logger, closer, err := newLogger(path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("session started", "session_id", "s-1")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"session_id":"s-1"`) {
		t.Fatalf("expected json log line, got %q", string(raw))
	}
}

func TestNewLoggerWithoutPathDiscards(t *testing.T) {
	logger, closer, err := newLogger("")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Error("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
