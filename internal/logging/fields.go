package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line so it can be filtered without parsing the message.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldRunID identifies a single daemon invocation.
	FieldRunID = "run_id"
	// FieldPath is used for filesystem paths touched by the prober.
	FieldPath = "path"
)
