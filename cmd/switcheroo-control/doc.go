// Package main hosts the switcheroo-control entrypoint and command graph.
//
// Invoked without a subcommand it runs the service: probe the vga_switcheroo
// switch once, optionally force the integrated GPU, then publish HasDualGpu on
// the bus until stopped. The remaining commands are diagnostics and
// configuration scaffolding built on the same internal packages.
package main
