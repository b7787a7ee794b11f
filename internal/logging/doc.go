// Package logging assembles structured slog loggers and formatting helpers used
// across switcheroo-control.
//
// It owns the console and JSON handlers, maps configured level names onto slog
// levels, and exposes attribute helpers plus the standard field keys
// (component, event_type, error_hint, impact) so warnings carry the cause, the
// consequence, and a next step. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
