package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"switcheroo/internal/deps"
	"switcheroo/internal/preflight"
	"switcheroo/internal/testsupport"
)

func TestCheckSwitchAccess_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switch")
	testsupport.WriteFile(t, path, "")
	result := preflight.CheckSwitchAccess("switch", path)
	if !result.Passed {
		t.Fatalf("expected pass for writable file, got: %s", result.Detail)
	}
}

func TestCheckSwitchAccess_NotExist(t *testing.T) {
	result := preflight.CheckSwitchAccess("switch", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing file")
	}
	if !strings.Contains(result.Detail, "no switcheroo support") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckSwitchAccess_Dir(t *testing.T) {
	result := preflight.CheckSwitchAccess("switch", t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckForcePolicy(t *testing.T) {
	tests := []struct {
		name    string
		cmdline *string
		passed  bool
		detail  string
	}{
		{name: "absent file", cmdline: nil, passed: true, detail: "force integrated"},
		{name: "not set", cmdline: ptr("quiet splash"), passed: true, detail: "parameter not set"},
		{name: "disabled", cmdline: ptr("quiet xdg.force_integrated=0"), passed: true, detail: "leave default GPU"},
		{name: "enabled", cmdline: ptr("xdg.force_integrated=on"), passed: true, detail: "force integrated"},
		{name: "invalid", cmdline: ptr("xdg.force_integrated=maybe"), passed: false, detail: "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cmdline")
			if tt.cmdline != nil {
				testsupport.WriteFile(t, path, *tt.cmdline)
			}
			result := preflight.CheckForcePolicy("force", path)
			if result.Passed != tt.passed {
				t.Fatalf("passed = %v, want %v (%s)", result.Passed, tt.passed, result.Detail)
			}
			if !strings.Contains(result.Detail, tt.detail) {
				t.Fatalf("detail %q does not contain %q", result.Detail, tt.detail)
			}
		})
	}
}

func TestCheckSecurityPolicy(t *testing.T) {
	ctx := context.Background()

	missing := deps.Status{Name: "Security status", Command: "absent", Detail: `binary "absent" not found`}
	if result := preflight.CheckSecurityPolicy(ctx, missing, "Enforcing"); !result.Passed {
		t.Fatalf("missing command should pass, got %s", result.Detail)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithSecurityStatus("Enforcing"))
	available := deps.Status{Name: "Security status", Command: cfg.Security.Command, Available: true}
	if result := preflight.CheckSecurityPolicy(ctx, available, "Enforcing"); result.Passed {
		t.Fatal("enforcing policy should fail the check")
	}
	if result := preflight.CheckSecurityPolicy(ctx, available, "Permissive"); !result.Passed {
		t.Fatalf("non-matching status should pass, got %s", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSwitchFile(),
		testsupport.WithCmdline("ro quiet xdg.force_integrated=1\n"),
		testsupport.WithSecurityStatus("Permissive"),
	)
	results := preflight.RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %#v", len(results), results)
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected %s to pass, got %s", result.Name, result.Detail)
		}
	}
	if _, err := os.Stat(cfg.Paths.SwitchPath); err != nil {
		t.Fatalf("switch file disappeared: %v", err)
	}
	data, _ := os.ReadFile(cfg.Paths.SwitchPath)
	if len(data) != 0 {
		t.Fatalf("preflight must not write the switch, got %q", data)
	}
}

func TestRunAllSkipsDisabledSecurity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if results := preflight.RunAll(context.Background(), cfg); len(results) != 2 {
		t.Fatalf("expected 2 results, got %#v", results)
	}
	if results := preflight.RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil for nil config")
	}
}

func ptr(s string) *string { return &s }
