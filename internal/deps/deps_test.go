package deps

import (
	"os"
	"path/filepath"
	"testing"

	"switcheroo/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for blank command: %#v", results[2])
	}
}

func TestSystemRequirements(t *testing.T) {
	cfg := config.Default()
	reqs := SystemRequirements(&cfg)
	if len(reqs) != 1 {
		t.Fatalf("expected one requirement, got %d", len(reqs))
	}
	if reqs[0].Command != "getenforce" || !reqs[0].Optional {
		t.Fatalf("unexpected requirement: %#v", reqs[0])
	}

	cfg.Security.Enabled = false
	if reqs := SystemRequirements(&cfg); len(reqs) != 0 {
		t.Fatalf("expected no requirements when security check disabled, got %#v", reqs)
	}
	if reqs := SystemRequirements(nil); reqs != nil {
		t.Fatalf("expected nil for nil config")
	}
}
