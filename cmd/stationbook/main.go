/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/stationbook/internal/config"
	"github.com/friendsincode/stationbook/internal/logging"
	"github.com/friendsincode/stationbook/internal/plan"
	"github.com/friendsincode/stationbook/internal/telemetry"
	"github.com/friendsincode/stationbook/internal/version"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "stationbook",
	Short:         "stationbook - platform conflict checks for train bookings",
	Long:          "stationbook books stoppage and through events on station platforms and refuses bookings that break the minimum separation of their class.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.SetupWithWriter(cfg.Environment, cmd.ErrOrStderr())
	return nil
}

// startTracing installs the tracer provider; the returned func flushes it.
func startTracing(ctx context.Context) (func(), error) {
	tp, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		ServiceName:    "stationbook",
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize tracer: %w", err)
	}
	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}, nil
}

func printResult(w io.Writer, res plan.Result) {
	req := res.Request
	label := req.Label
	if label == "" {
		label = fmt.Sprintf("%s on platform %d", req.Class, req.PlatformID)
	}
	switch res.Outcome {
	case plan.OutcomeAccepted:
		fmt.Fprintf(w, "ok       %-28s %s  booking %s\n", label, req.At.Format("15:04:05"), res.Booking.ID)
	case plan.OutcomeRefused:
		fmt.Fprintf(w, "refused  %-28s %s  %v\n", label, req.At.Format("15:04:05"), res.Conflict)
	}
}

func printSummary(w io.Writer, report *plan.Report) {
	fmt.Fprintf(w, "%d accepted, %d refused\n", report.Accepted, report.Refused)
}

func writeMetrics(cmd *cobra.Command, metrics *telemetry.Metrics, dest string) error {
	if dest == "" {
		return nil
	}
	if dest == "-" {
		return metrics.WriteText(cmd.OutOrStdout())
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()
	return metrics.WriteText(f)
}
