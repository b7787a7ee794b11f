// Package config loads, normalizes, and validates switcheroo-control
// configuration data.
//
// It supplies the well-known kernel paths and bus names as defaults, reads
// TOML files, and honours environment overrides such as SWITCHEROO_LOG_LEVEL.
// A missing configuration file is not an error: the daemon is expected to run
// from defaults on most machines.
//
// Always obtain settings through this package so the daemon, the status
// command, and tests agree on paths and bus names.
package config
