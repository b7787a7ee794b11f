package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"switcheroo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose kernel paths and run lock live in a
// unique temp directory. The switch file and command line are not created
// unless requested, and the security check is disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SwitchPath = filepath.Join(base, "debug", "vgaswitcheroo", "switch")
	cfgVal.Paths.CmdlinePath = filepath.Join(base, "proc", "cmdline")
	cfgVal.Paths.LockPath = filepath.Join(base, "run", "switcheroo-control.lock")
	cfgVal.Security.Enabled = false
	cfgVal.DBus.Bus = config.BusSession

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSwitchFile creates an empty, writable switch file.
func WithSwitchFile() ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, b.cfg.Paths.SwitchPath, "")
	}
}

// WithCmdline writes the kernel command line contents.
func WithCmdline(contents string) ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, b.cfg.Paths.CmdlinePath, contents)
	}
}

// WithSecurityStatus enables the security check and stubs its status command
// so that it prints status.
func WithSecurityStatus(status string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		command := filepath.Join(binDir, "getenforce")
		script := "#!/bin/sh\necho " + status + "\n"
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		if err := os.WriteFile(command, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", command, err)
		}
		b.cfg.Security.Enabled = true
		b.cfg.Security.Command = command
	}
}

// WithoutLock disables the run lock.
func WithoutLock() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LockPath = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Paths.CmdlinePath))
}

// WriteFile creates path and its parent directories with the given contents.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
