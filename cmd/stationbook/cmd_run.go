/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friendsincode/stationbook/internal/layout"
	"github.com/friendsincode/stationbook/internal/plan"
	"github.com/friendsincode/stationbook/internal/telemetry"
)

var runMetricsOut string

var runCmd = &cobra.Command{
	Use:   "run [layout.yaml]",
	Short: "Book every plan entry of a layout file",
	Long: `Load a station layout and book its plan in order.

Refused bookings are listed and the run continues. A plan entry naming a
platform the station does not have stops the run with an error.

The layout path defaults to STATIONBOOK_LAYOUT.

Examples:
  stationbook run examples/central.yaml
  stationbook run examples/central.yaml --metrics -
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runMetricsOut, "metrics", "", "Write booking metrics after the run to this file (\"-\" for stdout)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	path, err := layoutPath(args)
	if err != nil {
		return err
	}
	file, err := layout.Load(path)
	if err != nil {
		return err
	}
	st, err := file.Build(logger)
	if err != nil {
		return fmt.Errorf("build station: %w", err)
	}
	requests, err := file.Requests()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	stopTracing, err := startTracing(ctx)
	if err != nil {
		return err
	}
	defer stopTracing()

	metrics := telemetry.NewMetrics()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, st.ID().Describe())
	fmt.Fprint(out, st.DescribeLines())

	runner := plan.NewRunner(st, metrics, nil, logger)
	report, runErr := runner.Run(ctx, requests)
	for _, res := range report.Results {
		printResult(out, res)
	}
	printSummary(out, report)

	dest := runMetricsOut
	if dest == "" {
		dest = cfg.MetricsOut
	}
	if err := writeMetrics(cmd, metrics, dest); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func layoutPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.LayoutPath != "" {
		return cfg.LayoutPath, nil
	}
	return "", errors.New("no layout given: pass a path or set STATIONBOOK_LAYOUT")
}
