/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"bytes"
	"strings"
	"testing"
)

const centralLayout = "../../examples/central.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STATIONBOOK_ENV", "test")
	t.Setenv("STATIONBOOK_METRICS_OUT", "")
	runMetricsOut = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}

	want := strings.Join([]string{
		"Station ID (Integer): 1001",
		"Lines:",
		"- Blue Line",
		"- Yellow Line",
		"Stoppage scheduled successfully.",
		"Through train scheduled successfully.",
		"Conflict: Could not schedule stoppage.",
		"Through train scheduled successfully.",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("demo output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", centralLayout, "--metrics", "-")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Station ID (Integer): 1001",
		"refused  Blue Line relief stopper",
		"4 accepted, 1 refused",
		`stationbook_booking_attempts_total{class="stoppage",outcome="refused"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandNeedsLayout(t *testing.T) {
	t.Setenv("STATIONBOOK_LAYOUT", "")
	if _, err := execute(t, "run"); err == nil || !strings.Contains(err.Error(), "no layout given") {
		t.Fatalf("err = %v, want missing layout error", err)
	}
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		at   string
		want string
	}{
		{at: "10:20", want: "would be refused"},
		{at: "10:30", want: "would be accepted"},
	}
	for _, tt := range tests {
		out, err := execute(t, "check", centralLayout, "--platform", "1", "--class", "stoppage", "--at", tt.at)
		if err != nil {
			t.Fatalf("check %s: %v", tt.at, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("check %s = %q, want %q", tt.at, out, tt.want)
		}
	}
}

func TestCheckUnknownPlatform(t *testing.T) {
	_, err := execute(t, "check", centralLayout, "--platform", "9", "--at", "10:00")
	if err == nil || !strings.Contains(err.Error(), "platform not found") {
		t.Fatalf("err = %v, want platform not found", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "stationbook ") {
		t.Fatalf("version output = %q", out)
	}
}
