package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"switcheroo/internal/config"
)

// Requirement defines an external command switcheroo-control relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// SystemRequirements lists the commands the configured service runs. The
// security status command is optional: when it is missing the probe proceeds
// as if the policy were not enforcing.
func SystemRequirements(cfg *config.Config) []Requirement {
	if cfg == nil || !cfg.Security.Enabled {
		return nil
	}
	return []Requirement{
		{
			Name:        "Security status",
			Command:     cfg.Security.Command,
			Description: "Skips probing while the security policy is enforcing",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
