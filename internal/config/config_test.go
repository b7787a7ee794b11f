package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"switcheroo/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be reported as absent")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}

	def := config.Default()
	if cfg.Paths.SwitchPath != def.Paths.SwitchPath {
		t.Fatalf("unexpected switch path: %q", cfg.Paths.SwitchPath)
	}
	if cfg.Paths.CmdlinePath != "/proc/cmdline" {
		t.Fatalf("unexpected cmdline path: %q", cfg.Paths.CmdlinePath)
	}
	if cfg.DBus.Bus != config.BusSystem {
		t.Fatalf("expected system bus, got %q", cfg.DBus.Bus)
	}
	if cfg.DBus.Name != "net.hadess.SwitcherooControl" {
		t.Fatalf("unexpected bus name: %q", cfg.DBus.Name)
	}
	if cfg.DBus.ObjectPath != "/net/hadess/SwitcherooControl" {
		t.Fatalf("unexpected object path: %q", cfg.DBus.ObjectPath)
	}
	if !cfg.Security.Enabled || cfg.Security.Command != "getenforce" || cfg.Security.EnforcingValue != "Enforcing" {
		t.Fatalf("unexpected security defaults: %+v", cfg.Security)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "switcheroo-control.toml")

	type payload struct {
		Paths struct {
			SwitchPath string `toml:"switch_path"`
			LockPath   string `toml:"lock_path"`
		} `toml:"paths"`
		DBus struct {
			Bus string `toml:"bus"`
		} `toml:"dbus"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.SwitchPath = filepath.Join(tempDir, "switch")
	custom.Paths.LockPath = ""
	custom.DBus.Bus = "Session"
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.SwitchPath != custom.Paths.SwitchPath {
		t.Fatalf("unexpected switch path: %q", cfg.Paths.SwitchPath)
	}
	if cfg.Paths.LockPath != "" {
		t.Fatalf("expected lock disabled, got %q", cfg.Paths.LockPath)
	}
	if cfg.Paths.CmdlinePath != "/proc/cmdline" {
		t.Fatalf("expected default cmdline path, got %q", cfg.Paths.CmdlinePath)
	}
	if cfg.DBus.Bus != config.BusSession {
		t.Fatalf("expected normalized session bus, got %q", cfg.DBus.Bus)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nswich_path = \"/x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SWITCHEROO_BUS", "session")
	t.Setenv("SWITCHEROO_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DBus.Bus != config.BusSession {
		t.Fatalf("expected bus from env, got %q", cfg.DBus.Bus)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected level from env, got %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{
			name:    "unknown bus",
			mutate:  func(c *config.Config) { c.DBus.Bus = "starter" },
			wantErr: "dbus.bus",
		},
		{
			name:    "bad object path",
			mutate:  func(c *config.Config) { c.DBus.ObjectPath = "net/hadess/" },
			wantErr: "dbus.object_path",
		},
		{
			name:    "empty name",
			mutate:  func(c *config.Config) { c.DBus.Name = "" },
			wantErr: "dbus.name",
		},
		{
			name:    "empty switch path",
			mutate:  func(c *config.Config) { c.Paths.SwitchPath = "" },
			wantErr: "paths.switch_path",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleRoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	def := config.Default()
	if cfg.DBus != def.DBus || cfg.Security != def.Security || cfg.Logging != def.Logging {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}

func TestEncodeIncludesSections(t *testing.T) {
	cfg := config.Default()
	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, section := range []string{"[paths]", "[security]", "[dbus]", "[logging]"} {
		if !strings.Contains(out, section) {
			t.Fatalf("expected %s in encoded config:\n%s", section, out)
		}
	}
}
