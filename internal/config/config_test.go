/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STATIONBOOK_ENV", "")
	t.Setenv("STATIONBOOK_LAYOUT", "")
	t.Setenv("STATIONBOOK_TRACING_ENABLED", "")
	t.Setenv("STATIONBOOK_TRACING_SAMPLE_RATE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Environment != EnvProduction {
		t.Fatalf("environment = %q, want production", cfg.Environment)
	}
	if cfg.TracingEnabled {
		t.Fatal("tracing should be off by default")
	}
	if cfg.TracingSampleRate != 1.0 {
		t.Fatalf("sample rate = %v, want 1", cfg.TracingSampleRate)
	}
}

func TestLoadReadsEnvKeys(t *testing.T) {
	t.Setenv("STATIONBOOK_ENV", "Development")
	t.Setenv("STATIONBOOK_LAYOUT", "/etc/stationbook/central.yaml")
	t.Setenv("STATIONBOOK_TRACING_ENABLED", "yes")
	t.Setenv("STATIONBOOK_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("STATIONBOOK_TRACING_SAMPLE_RATE", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Environment != EnvDevelopment {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.LayoutPath != "/etc/stationbook/central.yaml" {
		t.Fatalf("layout path = %q", cfg.LayoutPath)
	}
	if !cfg.TracingEnabled || cfg.OTLPEndpoint != "collector:4317" || cfg.TracingSampleRate != 0.25 {
		t.Fatalf("tracing config = %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("STATIONBOOK_ENV", "staging")
	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported environment to fail")
	}

	t.Setenv("STATIONBOOK_ENV", "test")
	t.Setenv("STATIONBOOK_TRACING_SAMPLE_RATE", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected out of range sample rate to fail")
	}
}
