// Package ipc publishes the switcheroo state on D-Bus and ships the matching
// client used by the CLI.
//
// The Publisher owns the well-known bus name, exports a single read-only
// boolean property (HasDualGpu) together with the embedded introspection
// data, and emits one PropertiesChanged signal once startup has completed.
// Losing the bus name is reported as a clean exit request so a second
// instance stops quietly.
package ipc
