package config

const (
	defaultSwitchPath      = "/sys/kernel/debug/vgaswitcheroo/switch"
	defaultCmdlinePath     = "/proc/cmdline"
	defaultLockPath        = "/run/switcheroo-control.lock"
	defaultSecurityCommand = "getenforce"
	defaultEnforcingValue  = "Enforcing"
	defaultBus             = BusSystem
	defaultBusName         = "net.hadess.SwitcherooControl"
	defaultObjectPath      = "/net/hadess/SwitcherooControl"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	systemConfigPath       = "/etc/switcheroo-control/config.toml"
	projectConfigName      = "switcheroo-control.toml"
)

// Bus selectors accepted by dbus.bus.
const (
	BusSystem  = "system"
	BusSession = "session"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SwitchPath:  defaultSwitchPath,
			CmdlinePath: defaultCmdlinePath,
			LockPath:    defaultLockPath,
		},
		Security: Security{
			Enabled:        true,
			Command:        defaultSecurityCommand,
			EnforcingValue: defaultEnforcingValue,
		},
		DBus: DBus{
			Bus:        defaultBus,
			Name:       defaultBusName,
			ObjectPath: defaultObjectPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
