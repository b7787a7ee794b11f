package switcheroo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// SecurityPolicy reports whether a mandatory-access-control policy is
// enforcing. Probing is skipped entirely while it is.
type SecurityPolicy interface {
	Enforcing(ctx context.Context) (bool, error)
}

// CommandPolicy runs a status command (getenforce by default) and compares
// its trimmed output with the enforcing literal.
type CommandPolicy struct {
	Command        string
	EnforcingValue string

	output func(ctx context.Context, name string) ([]byte, error)
}

// NewCommandPolicy returns a SecurityPolicy backed by an external command.
func NewCommandPolicy(command, enforcingValue string) *CommandPolicy {
	return &CommandPolicy{
		Command:        strings.TrimSpace(command),
		EnforcingValue: enforcingValue,
		output:         commandOutput,
	}
}

// Enforcing runs the status command. Output must equal EnforcingValue exactly
// once surrounding whitespace is removed.
func (p *CommandPolicy) Enforcing(ctx context.Context) (bool, error) {
	if p.Command == "" {
		return false, fmt.Errorf("security status command not configured")
	}
	out, err := p.output(ctx, p.Command)
	if err != nil {
		return false, fmt.Errorf("run %s: %w", p.Command, err)
	}
	return strings.TrimSpace(string(out)) == p.EnforcingValue, nil
}

func commandOutput(ctx context.Context, name string) ([]byte, error) {
	return exec.CommandContext(ctx, name).Output()
}
