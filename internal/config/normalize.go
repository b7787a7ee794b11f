package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSecurity()
	c.normalizeDBus()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SwitchPath) == "" {
		c.Paths.SwitchPath = defaultSwitchPath
	}
	if c.Paths.SwitchPath, err = expandPath(strings.TrimSpace(c.Paths.SwitchPath)); err != nil {
		return fmt.Errorf("paths.switch_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.CmdlinePath) == "" {
		c.Paths.CmdlinePath = defaultCmdlinePath
	}
	if c.Paths.CmdlinePath, err = expandPath(strings.TrimSpace(c.Paths.CmdlinePath)); err != nil {
		return fmt.Errorf("paths.cmdline_path: %w", err)
	}
	// An empty lock path disables the run lock.
	if c.Paths.LockPath, err = expandPath(strings.TrimSpace(c.Paths.LockPath)); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSecurity() {
	c.Security.Command = strings.TrimSpace(c.Security.Command)
	if c.Security.Command == "" {
		c.Security.Command = defaultSecurityCommand
	}
	c.Security.EnforcingValue = strings.TrimSpace(c.Security.EnforcingValue)
	if c.Security.EnforcingValue == "" {
		c.Security.EnforcingValue = defaultEnforcingValue
	}
}

func (c *Config) normalizeDBus() {
	if value, ok := os.LookupEnv("SWITCHEROO_BUS"); ok && strings.TrimSpace(value) != "" {
		c.DBus.Bus = value
	}
	c.DBus.Bus = strings.ToLower(strings.TrimSpace(c.DBus.Bus))
	if c.DBus.Bus == "" {
		c.DBus.Bus = defaultBus
	}
	c.DBus.Name = strings.TrimSpace(c.DBus.Name)
	if c.DBus.Name == "" {
		c.DBus.Name = defaultBusName
	}
	c.DBus.ObjectPath = strings.TrimSpace(c.DBus.ObjectPath)
	if c.DBus.ObjectPath == "" {
		c.DBus.ObjectPath = defaultObjectPath
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("SWITCHEROO_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
