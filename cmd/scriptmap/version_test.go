package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("expected non-empty version string")
	}
}

// TestGetCommit tests commit string resolution.
func TestGetCommit(t *testing.T) {
	if got := getCommit(); got == "" {
		t.Error("expected non-empty commit string")
	}
}

// TestGetDate tests build date resolution.
func TestGetDate(t *testing.T) {
	if got := getDate(); got == "" {
		t.Error("expected non-empty date string")
	}
}

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "scriptmap version") {
		t.Errorf("expected version line, got %q", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("expected commit line, got %q", output)
	}
	if !strings.Contains(output, "built:") {
		t.Errorf("expected built line, got %q", output)
	}
}

// TestVersionLdflags tests that ldflags values take precedence.
func TestVersionLdflags(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})

	version = "1.2.3"
	commit = "abc1234"
	date = "2026-03-01"

	if got := getVersion(); got != "1.2.3" {
		t.Errorf("expected '1.2.3', got %q", got)
	}
	if got := getCommit(); got != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", got)
	}
	if got := getDate(); got != "2026-03-01" {
		t.Errorf("expected '2026-03-01', got %q", got)
	}
}
