package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"switcheroo/internal/config"
	"switcheroo/internal/ipc"
	"switcheroo/internal/logging"
	"switcheroo/internal/switcheroo"
)

// Daemon runs the probe once and then serves the result until stopped.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	runID  string

	lockPath string
	lock     *flock.Flock

	security switcheroo.SecurityPolicy
	dial     ipc.Dialer
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithSecurityPolicy replaces the configured security policy check.
func WithSecurityPolicy(policy switcheroo.SecurityPolicy) Option {
	return func(d *Daemon) { d.security = policy }
}

// WithDialer replaces the bus dialer.
func WithDialer(dial ipc.Dialer) Option {
	return func(d *Daemon) { d.dial = dial }
}

// New constructs a daemon from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	runID := uuid.NewString()
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:      cfg,
		logger:   logger.With(logging.String(logging.FieldRunID, runID)),
		runID:    runID,
		lockPath: cfg.Paths.LockPath,
		security: switcheroo.NewSecurityPolicy(cfg),
		dial:     ipc.DialBus,
	}
	if d.lockPath != "" {
		d.lock = flock.New(d.lockPath)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// RunID identifies this invocation in logs.
func (d *Daemon) RunID() string { return d.runID }

// Run probes the hardware and publishes the result. It blocks until ctx is
// done or the bus name is lost. Early endings are returned as
// *switcheroo.ExitError.
func (d *Daemon) Run(ctx context.Context) error {
	release, err := d.acquireLock()
	if err != nil {
		return err
	}
	defer release()

	prober := switcheroo.NewProber(d.cfg, d.security, d.logger)
	result, err := prober.Run(ctx)
	if err != nil {
		return err
	}
	d.logger.Debug("probe complete",
		logging.Bool("available", result.Available),
		logging.Bool("force", result.Policy.Force),
		logging.String("policy_source", result.Policy.Source),
		logging.Bool("forced", result.Forced),
	)

	state := ipc.NewState(result.Available)
	publisher, err := ipc.NewPublisher(d.cfg, state, d.dial, d.logger)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return publisher.Run(ctx)
}

// acquireLock takes the run lock. A lock held by another process is a
// duplicate instance and ends the run cleanly; failing to create the lock
// file only costs the extra guard.
func (d *Daemon) acquireLock() (func(), error) {
	noop := func() {}
	if d.lock == nil {
		return noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		d.lockUnavailable(err)
		return noop, nil
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		d.lockUnavailable(err)
		return noop, nil
	}
	if !ok {
		d.logger.Debug("switcheroo-control is already running",
			logging.String("lock", d.lockPath),
			logging.String(logging.FieldEventType, "duplicate_instance"),
		)
		return noop, switcheroo.Exit(switcheroo.ExitOK, "another instance holds "+d.lockPath, nil)
	}
	return func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Debug("failed to release run lock", logging.Error(err))
		}
	}, nil
}

func (d *Daemon) lockUnavailable(err error) {
	logging.WarnWithContext(d.logger, "run lock unavailable; relying on bus name ownership", "lock_unavailable",
		logging.String("lock", d.lockPath),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check paths.lock_path permissions or set it empty"),
		logging.String(logging.FieldImpact, "duplicate instances are only detected on the bus"),
	)
}
