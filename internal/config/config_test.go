package config

import (
	"flag"
	"io"
	"strings"
	"testing"
	"time"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("typer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WPM != 3000 || cfg.StartDelaySeconds != 3 {
		t.Fatalf("defaults: wpm=%d delay=%d", cfg.WPM, cfg.StartDelaySeconds)
	}
	if cfg.Profile != ProfileFast || cfg.Backend != BackendAuto || cfg.OnInjectError != OnInjectErrorContinue {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.SettleDelay >= 0 {
		t.Fatalf("settle delay must default to profile value, got %v", cfg.SettleDelay)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("TYPER_WPM", "1200")
	t.Setenv("TYPER_START_DELAY", "5")
	t.Setenv("TYPER_PROFILE", "HUMAN")
	t.Setenv("TYPER_HOTKEY_DEBOUNCE", "150ms")
	t.Setenv("TYPER_JITTER", "true")

	cfg, err := Load(newFlagSet(), []string{"-wpm", "600", "-backend", " Stdout "})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WPM != 600 {
		t.Fatalf("flag must override env: wpm=%d", cfg.WPM)
	}
	if cfg.StartDelaySeconds != 5 || !cfg.Jitter {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Profile != ProfileHuman || cfg.Backend != BackendStdout {
		t.Fatalf("values must be normalized: profile=%q backend=%q", cfg.Profile, cfg.Backend)
	}
	if cfg.HotkeyDebounce != 150*time.Millisecond {
		t.Fatalf("debounce: %v", cfg.HotkeyDebounce)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("TYPER_WPM", "fast")
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	if _, err := Load(newFlagSet(), []string{"-nope"}); err == nil {
		t.Fatal("expected flag error")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.WPM = 0
	cfg.StartDelaySeconds = -1
	cfg.Profile = "turbo"
	cfg.OnInjectError = "retry"
	cfg.Backend = "xdotool"
	cfg.InputFile = "a.txt"
	cfg.FromClipboard = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, part := range []string{"wpm", "start-delay", "turbo", "retry", "xdotool", "-clipboard"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %q", err, part)
		}
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
}

func TestValidateTUIRejectsStdoutBackend(t *testing.T) {
	cfg := Defaults()
	if err := cfg.ValidateTUI(); err != nil {
		t.Fatalf("default backend must be allowed: %v", err)
	}
	cfg.Backend = BackendStdout
	if err := cfg.ValidateTUI(); err == nil || !strings.Contains(err.Error(), "stdout") {
		t.Fatalf("expected stdout backend to be rejected, got %v", err)
	}
}
