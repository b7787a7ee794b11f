// Package preflight provides local readiness checks for the kernel
// interfaces and commands switcheroo-control depends on.
//
// The CLI "switcheroo-control status" command runs RunAll to explain why the
// service would, or would not, publish HasDualGpu on this machine. The
// checks only observe: none of them writes to the switch file.
package preflight
