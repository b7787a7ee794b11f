package switcheroo

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"switcheroo/internal/config"
	"switcheroo/internal/logging"
)

// ForceIntegratedCommand is written to the switch file to make the integrated
// GPU the default.
const ForceIntegratedCommand = "DIGD"

// Result describes a completed probe.
type Result struct {
	// Available is true when the switch file opened for writing.
	Available bool
	Policy    ForcePolicy
	// Forced is true when the force command was written successfully.
	Forced bool
}

// Prober performs the one-shot capability probe and forcing sequence.
type Prober struct {
	switchPath  string
	cmdlinePath string
	security    SecurityPolicy
	logger      *slog.Logger

	openSwitch func(path string) (io.WriteCloser, error)
}

// NewProber builds a Prober from configuration. A nil security policy skips
// the enforcement check.
func NewProber(cfg *config.Config, security SecurityPolicy, logger *slog.Logger) *Prober {
	return &Prober{
		switchPath:  cfg.Paths.SwitchPath,
		cmdlinePath: cfg.Paths.CmdlinePath,
		security:    security,
		logger:      logging.NewComponentLogger(logger, "prober"),
		openSwitch:  openWriteOnly,
	}
}

// NewSecurityPolicy returns the configured SecurityPolicy, or nil when the
// check is disabled.
func NewSecurityPolicy(cfg *config.Config) SecurityPolicy {
	if cfg == nil || !cfg.Security.Enabled {
		return nil
	}
	return NewCommandPolicy(cfg.Security.Command, cfg.Security.EnforcingValue)
}

func openWriteOnly(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY, 0)
}

// Run executes the probe. Outcomes that should end the process are returned
// as *ExitError; any nil-error return has Available set.
func (p *Prober) Run(ctx context.Context) (Result, error) {
	if p.security != nil {
		enforcing, err := p.security.Enforcing(ctx)
		switch {
		case err != nil:
			logging.WarnWithContext(p.logger, "security policy status unavailable; assuming not enforcing", "security_check_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "install the status command or set security.enabled = false"),
				logging.String(logging.FieldImpact, "probe continues without the enforcement check"),
			)
		case enforcing:
			p.logger.Debug("security policy is enforcing; not probing vga_switcheroo",
				logging.String(logging.FieldEventType, "security_enforcing"),
			)
			return Result{}, Exit(ExitOK, "security policy enforcing", nil)
		}
	}

	file, err := p.openSwitch(p.switchPath)
	if err != nil {
		return Result{}, p.openFailure(err)
	}

	result := Result{Available: true}
	result.Policy = ReadForcePolicy(p.cmdlinePath, p.logger)
	if result.Policy.Force {
		result.Forced = p.forceIntegrated(file)
	}

	if err := file.Close(); err != nil {
		p.logger.Debug("closing switch file failed",
			logging.String(logging.FieldPath, p.switchPath),
			logging.Error(err),
		)
	}
	return result, nil
}

func (p *Prober) openFailure(err error) error {
	switch {
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		logging.WarnWithContext(p.logger, "insufficient privileges to open vga_switcheroo switch", "switch_permission_denied",
			logging.String(logging.FieldPath, p.switchPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run the service as root with debugfs mounted"),
			logging.String(logging.FieldImpact, "dual GPU state not published"),
		)
		return Exit(ExitFailure, "open switch", err)
	case errors.Is(err, fs.ErrNotExist):
		p.logger.Debug("no switcheroo support available",
			logging.String(logging.FieldPath, p.switchPath),
			logging.String(logging.FieldEventType, "switcheroo_absent"),
		)
		return Exit(ExitOK, "no switcheroo support", err)
	default:
		logging.WarnWithContext(p.logger, "could not query vga_switcheroo status", "switch_open_failed",
			logging.String(logging.FieldPath, p.switchPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "dual GPU state not published"),
		)
		return Exit(ExitFailure, "open switch", err)
	}
}

func (p *Prober) forceIntegrated(w io.Writer) bool {
	p.logger.Debug("forcing the integrated card as the default")
	if _, err := io.WriteString(w, ForceIntegratedCommand); err != nil {
		logging.WarnWithContext(p.logger, "could not force the integrated card on", "force_write_failed",
			logging.String(logging.FieldPath, p.switchPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "discrete GPU may remain the default"),
		)
		return false
	}
	p.logger.Debug("forced the integrated card as the default successfully")
	return true
}
