// Package switcheroo probes the kernel vga_switcheroo debug interface and
// applies the force-integrated policy.
//
// The Prober runs once at startup: it consults the mandatory-access-control
// status, opens the switch control file for writing (which doubles as the
// capability test), reads xdg.force_integrated from the kernel command line,
// and writes the DIGD command when forcing is requested. Conditions that
// should end the process are returned as *ExitError values so callers decide
// when to exit.
package switcheroo
