package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// baseArgs — печать в stdout без отсчёта и пауз, без глобального хоткея.
func baseArgs(extra ...string) []string {
	args := []string{
		"-backend", "stdout",
		"-start-delay", "0",
		"-settle-delay", "0",
		"-wpm", "100000",
		"-cancel-hotkey=false",
	}
	return append(args, extra...)
}

func TestRealMainTypesStdinToStdout(t *testing.T) {
	var stdout, stderr strings.Builder
	code := realMain(context.Background(), baseArgs(), strings.NewReader("a\tb\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "a\tb" {
		t.Fatalf("typed %q", got)
	}
	if !strings.Contains(stderr.String(), "Готово: 3") {
		t.Fatalf("stderr: %s", stderr.String())
	}
}

func TestRealMainReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(path, []byte("из файла\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr strings.Builder
	if code := realMain(context.Background(), baseArgs("-input", path), strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.String() != "из файла" {
		t.Fatalf("typed %q", stdout.String())
	}
}

func TestRealMainExitCodes(t *testing.T) {
	var stdout, stderr strings.Builder

	missing := filepath.Join(t.TempDir(), "missing.txt")
	if code := realMain(context.Background(), baseArgs("-input", missing), strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("missing file: exit code %d", code)
	}
	if code := realMain(context.Background(), baseArgs(), strings.NewReader("  \n"), &stdout, &stderr); code != 1 {
		t.Fatalf("empty input: exit code %d", code)
	}
	if code := realMain(context.Background(), baseArgs("-wpm", "0"), strings.NewReader("x"), &stdout, &stderr); code != 2 {
		t.Fatalf("bad config: exit code %d", code)
	}
	if code := realMain(context.Background(), []string{"-h"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("help: exit code %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should be typed, got %q", stdout.String())
	}
}

func TestRealMainCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr strings.Builder
	args := baseArgs()
	args[3] = "5" // -start-delay
	if code := realMain(ctx, args, strings.NewReader("never"), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.Len() != 0 || !strings.Contains(stderr.String(), "Отменено") {
		t.Fatalf("stdout=%q stderr=%s", stdout.String(), stderr.String())
	}
}
