/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friendsincode/stationbook/internal/layout"
	"github.com/friendsincode/stationbook/internal/plan"
	"github.com/friendsincode/stationbook/internal/timeline"
)

var (
	checkPlatform int
	checkClass    string
	checkAt       string
)

var checkCmd = &cobra.Command{
	Use:   "check [layout.yaml]",
	Short: "Ask whether a booking would be accepted",
	Long: `Load a station layout, apply its plan, then report whether one more
booking would be accepted. Nothing is booked by the query itself.

Examples:
  stationbook check examples/central.yaml --platform 1 --class stoppage --at 10:20
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkPlatform, "platform", 0, "Platform id")
	checkCmd.Flags().StringVar(&checkClass, "class", string(timeline.Stoppage), "Booking class (stoppage or through)")
	checkCmd.Flags().StringVar(&checkAt, "at", "", "Time as HH:MM, HH:MM:SS or RFC3339")
	_ = checkCmd.MarkFlagRequired("platform")
	_ = checkCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	class, err := timeline.ParseClass(checkClass)
	if err != nil {
		return err
	}
	at, err := layout.ParseInstant(checkAt)
	if err != nil {
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
	if _, err := plan.NewRunner(st, nil, nil, logger).Run(cmd.Context(), requests); err != nil {
		return fmt.Errorf("apply plan: %w", err)
	}

	conflicts, err := st.Check(checkPlatform, class, at)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(conflicts) == 0 {
		fmt.Fprintf(out, "%s on platform %d at %s would be accepted\n", class, checkPlatform, at.Format("15:04:05"))
		return nil
	}
	fmt.Fprintf(out, "%s on platform %d at %s would be refused (minimum separation %s):\n",
		class, checkPlatform, at.Format("15:04:05"), class.Window())
	for _, c := range conflicts {
		fmt.Fprintf(out, "- %s %s\n", class, c.Format("15:04:05"))
	}
	return nil
}
