package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDBus(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SwitchPath) == "" {
		return errors.New("paths.switch_path must be set")
	}
	if strings.TrimSpace(c.Paths.CmdlinePath) == "" {
		return errors.New("paths.cmdline_path must be set")
	}
	return nil
}

func (c *Config) validateDBus() error {
	switch c.DBus.Bus {
	case BusSystem, BusSession:
	default:
		return fmt.Errorf("dbus.bus must be %q or %q, got %q", BusSystem, BusSession, c.DBus.Bus)
	}
	if c.DBus.Name == "" {
		return errors.New("dbus.name must be set")
	}
	if !dbus.ObjectPath(c.DBus.ObjectPath).IsValid() {
		return fmt.Errorf("dbus.object_path %q is not a valid object path", c.DBus.ObjectPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
