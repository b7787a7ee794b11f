package preflight

import (
	"context"

	"switcheroo/internal/config"
	"switcheroo/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckSwitchAccess("vga_switcheroo switch", cfg.Paths.SwitchPath),
		CheckForcePolicy("Force integrated", cfg.Paths.CmdlinePath),
	}

	// Security status (only when the check is enabled)
	for _, status := range deps.CheckBinaries(deps.SystemRequirements(cfg)) {
		results = append(results, CheckSecurityPolicy(ctx, status, cfg.Security.EnforcingValue))
	}

	return results
}
