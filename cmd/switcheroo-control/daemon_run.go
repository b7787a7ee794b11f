package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"switcheroo/internal/daemon"
	"switcheroo/internal/logging"
	"switcheroo/internal/switcheroo"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Probe the hardware and serve HasDualGpu until stopped (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemonProcess(cmd.Context(), ctx)
		},
	}
}

func runDaemonProcess(cmdCtx context.Context, ctx *commandContext) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return switcheroo.Exit(switcheroo.ExitFailure, "init logger", err)
	}
	logger.Debug("configuration loaded", logging.String(logging.FieldPath, ctx.configPath))

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return switcheroo.Exit(switcheroo.ExitFailure, "create daemon", err)
	}

	err = d.Run(signalCtx)
	var exitErr *switcheroo.ExitError
	switch {
	case err == nil:
		logger.Info("switcheroo-control shutting down")
		return nil
	case errors.As(err, &exitErr):
		return err
	default:
		logger.Error("switcheroo-control stopped", logging.Error(err))
		return switcheroo.Exit(switcheroo.ExitFailure, "run", err)
	}
}
