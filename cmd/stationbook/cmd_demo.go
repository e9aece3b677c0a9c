/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/stationbook/internal/layout"
	"github.com/friendsincode/stationbook/internal/plan"
	"github.com/friendsincode/stationbook/internal/station"
	"github.com/friendsincode/stationbook/internal/timeline"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in booking demonstration",
	Long: `Build station 1001 with the Blue and Yellow lines and platforms 1 and 2,
then book a fixed sequence on platform 1:

  stoppage 10:00   accepted
  through  10:30   accepted
  stoppage 10:15   refused (within 30 minutes of 10:00)
  through  10:05   accepted (throughs only conflict with throughs)

Every attempt prints one line, accepted ones included.
`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	st := station.New(station.IntegerID(1001), logger)
	st.AddLine("Blue Line")
	st.AddLine("Yellow Line")
	for _, id := range []int{1, 2} {
		if err := st.AddPlatform(id); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, st.ID().Describe())
	fmt.Fprint(out, st.DescribeLines())

	runner := plan.NewRunner(st, nil, nil, logger)
	for _, req := range demoRequests() {
		res, err := runner.Book(cmd.Context(), req)
		if err != nil {
			return err
		}
		printDemoOutcome(out, res)
	}
	return nil
}

func demoRequests() []plan.Request {
	at := func(hour, minute int) time.Time {
		return layout.ReferenceDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	return []plan.Request{
		{PlatformID: 1, Class: timeline.Stoppage, At: at(10, 0)},
		{PlatformID: 1, Class: timeline.Through, At: at(10, 30)},
		{PlatformID: 1, Class: timeline.Stoppage, At: at(10, 15)},
		{PlatformID: 1, Class: timeline.Through, At: at(10, 5)},
	}
}

func printDemoOutcome(w io.Writer, res plan.Result) {
	noun := "stoppage"
	if res.Request.Class == timeline.Through {
		noun = "through train"
	}
	if res.Outcome == plan.OutcomeAccepted {
		fmt.Fprintf(w, "%s%s scheduled successfully.\n", strings.ToUpper(noun[:1]), noun[1:])
		return
	}
	fmt.Fprintf(w, "Conflict: Could not schedule %s.\n", noun)
}
