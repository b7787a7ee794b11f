package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"switcheroo/internal/config"
	"switcheroo/internal/ipc"
	"switcheroo/internal/preflight"
)

const statusBusTimeout = 5 * time.Second

// serviceState is what the status command learned from the bus.
type serviceState struct {
	Reachable  bool
	Running    bool
	HasDualGpu bool
	Detail     string
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local readiness checks and the published state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			service := queryService(cmd.Context(), cfg)

			var lines []string
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			lines = append(lines, renderTable([]string{"Check", "Status", "Detail"}, checkRows(results, colorize)))
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Service", colorize)...)
			lines = append(lines, serviceLines(cfg, service, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func queryService(parent context.Context, cfg *config.Config) serviceState {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, statusBusTimeout)
	defer cancel()

	client, err := ipc.Dial(cfg)
	if err != nil {
		return serviceState{Detail: err.Error()}
	}
	defer client.Close()

	running, err := client.Running(ctx)
	if err != nil {
		return serviceState{Reachable: true, Detail: err.Error()}
	}
	if !running {
		return serviceState{Reachable: true}
	}
	available, err := client.HasDualGpu(ctx)
	if err != nil {
		return serviceState{Reachable: true, Running: true, Detail: err.Error()}
	}
	return serviceState{Reachable: true, Running: true, HasDualGpu: available}
}

func serviceLines(cfg *config.Config, state serviceState, colorize bool) []string {
	lines := []string{
		renderStatusLine("Bus", statusInfo, fmt.Sprintf("%s (%s)", cfg.DBus.Bus, cfg.DBus.Name), colorize),
	}
	switch {
	case !state.Reachable:
		lines = append(lines, renderStatusLine("Service", statusError, "bus unavailable: "+state.Detail, colorize))
	case !state.Running && state.Detail != "":
		lines = append(lines, renderStatusLine("Service", statusError, state.Detail, colorize))
	case !state.Running:
		lines = append(lines, renderStatusLine("Service", statusWarn, "not running", colorize))
	case state.Detail != "":
		lines = append(lines,
			renderStatusLine("Service", statusOK, "running", colorize),
			renderStatusLine("HasDualGpu", statusError, state.Detail, colorize),
		)
	default:
		lines = append(lines,
			renderStatusLine("Service", statusOK, "running", colorize),
			renderStatusLine("HasDualGpu", statusInfo, yesNo(state.HasDualGpu), colorize),
		)
	}
	return lines
}
