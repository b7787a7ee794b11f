package switcheroo

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"switcheroo/internal/logging"
)

// ForceIntegratedParam is the kernel command-line parameter controlling forcing.
const ForceIntegratedParam = "xdg.force_integrated"

// Policy sources reported in ForcePolicy.Source.
const (
	PolicySourceCmdline = "cmdline"
	PolicySourceDefault = "default"
)

// ForcePolicy is the decision on whether to write the force-integrated command.
type ForcePolicy struct {
	Force bool
	// Source is PolicySourceCmdline when Force came from a valid parameter.
	Source string
	// Value is the raw parameter value, empty when absent.
	Value string
	// Err explains why the default applied.
	Err error
}

// ParseForceIntegrated interprets an xdg.force_integrated value. Word forms
// are case-insensitive.
func ParseForceIntegrated(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "on":
		return true, nil
	case "0", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w %q", ErrInvalidForceValue, value)
	}
}

// FindForceIntegrated returns the value of the first non-empty
// xdg.force_integrated=<value> token in a whitespace separated command line.
func FindForceIntegrated(cmdline string) (string, bool) {
	prefix := ForceIntegratedParam + "="
	for _, token := range strings.Fields(cmdline) {
		if value, ok := strings.CutPrefix(token, prefix); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// DecideForcePolicy derives the forcing policy from command-line contents.
// Anything other than a valid parameter falls back to forcing.
func DecideForcePolicy(cmdline string) ForcePolicy {
	value, ok := FindForceIntegrated(cmdline)
	if !ok {
		return ForcePolicy{Force: true, Source: PolicySourceDefault, Err: ErrForceParamAbsent}
	}
	force, err := ParseForceIntegrated(value)
	if err != nil {
		return ForcePolicy{Force: true, Source: PolicySourceDefault, Value: value, Err: err}
	}
	return ForcePolicy{Force: force, Source: PolicySourceCmdline, Value: value}
}

// ReadForcePolicy reads the command line at path and decides the forcing
// policy. An unreadable file yields the force default.
func ReadForcePolicy(path string, logger *slog.Logger) ForcePolicy {
	if logger == nil {
		logger = logging.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("could not read kernel command line",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
		return ForcePolicy{Force: true, Source: PolicySourceDefault, Err: err}
	}

	policy := DecideForcePolicy(string(data))
	switch {
	case policy.Source == PolicySourceCmdline:
		logger.Debug("kernel command line parsed",
			logging.String("param", ForceIntegratedParam+"="+policy.Value),
			logging.Bool("force", policy.Force),
		)
	case policy.Value != "":
		logging.WarnWithContext(logger, "invalid value for xdg.force_integrated on kernel command line", "cmdline_parse_failed",
			logging.String("value", policy.Value),
			logging.String(logging.FieldErrorHint, "use one of 0, 1, true, false, on, off"),
			logging.String(logging.FieldImpact, "integrated GPU will be forced"),
		)
	default:
		logger.Debug("could not parse kernel command line", logging.Error(policy.Err))
	}
	return policy
}
