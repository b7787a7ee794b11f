package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"switcheroo/internal/deps"
	"switcheroo/internal/switcheroo"
)

// CheckSwitchAccess verifies that the switch file exists and that the caller
// could open it for writing.
func CheckSwitchAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Result{Name: name, Detail: fmt.Sprintf("%s (no switcheroo support)", path)}
		case errors.Is(err, fs.ErrPermission):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: permission denied; debugfs needs root)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

// CheckForcePolicy reports the forcing decision the daemon would take. It
// fails only when a parameter is present with a value that cannot be parsed.
func CheckForcePolicy(name, cmdlinePath string) Result {
	policy := switcheroo.ReadForcePolicy(cmdlinePath, nil)
	action := "leave default GPU"
	if policy.Force {
		action = "force integrated"
	}

	switch {
	case policy.Source == switcheroo.PolicySourceCmdline:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s=%s)", action, switcheroo.ForceIntegratedParam, policy.Value)}
	case policy.Value != "":
		return Result{Name: name, Detail: fmt.Sprintf("%s (invalid %s=%s)", action, switcheroo.ForceIntegratedParam, policy.Value)}
	case errors.Is(policy.Err, switcheroo.ErrForceParamAbsent):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (parameter not set)", action)}
	default:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s unreadable)", action, cmdlinePath)}
	}
}

// CheckSecurityPolicy runs the security status command described by status.
// An enforcing policy fails the check because the daemon will not probe.
func CheckSecurityPolicy(ctx context.Context, status deps.Status, enforcingValue string) Result {
	if !status.Available {
		return Result{Name: status.Name, Passed: true, Detail: fmt.Sprintf("%s; assuming not enforcing", status.Detail)}
	}
	enforcing, err := switcheroo.NewCommandPolicy(status.Command, enforcingValue).Enforcing(ctx)
	if err != nil {
		return Result{Name: status.Name, Passed: true, Detail: fmt.Sprintf("%v; assuming not enforcing", err)}
	}
	if enforcing {
		return Result{Name: status.Name, Detail: "enforcing (probe skipped)"}
	}
	return Result{Name: status.Name, Passed: true, Detail: "not enforcing"}
}
