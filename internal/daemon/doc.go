// Package daemon composes the switcheroo-control process: run lock, probe,
// and bus publisher, in that order.
//
// Keep orchestration logic here. Probing lives in internal/switcheroo and the
// bus contract in internal/ipc; the daemon only sequences them and converts
// early endings into exit requests for the entry point.
package daemon
