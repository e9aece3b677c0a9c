/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environments accepted by STATIONBOOK_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	LayoutPath  string // default layout file for run/check when no argument is given
	MetricsOut  string // file that receives the metrics exposition after a run; "-" is stdout

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnvAny([]string{"STATIONBOOK_ENV"}, EnvProduction),
		LayoutPath:  getEnvAny([]string{"STATIONBOOK_LAYOUT"}, ""),
		MetricsOut:  getEnvAny([]string{"STATIONBOOK_METRICS_OUT"}, ""),

		TracingEnabled:    getEnvBoolAny([]string{"STATIONBOOK_TRACING_ENABLED"}, false),
		OTLPEndpoint:      getEnvAny([]string{"STATIONBOOK_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"}, "localhost:4317"),
		TracingSampleRate: getEnvFloatAny([]string{"STATIONBOOK_TRACING_SAMPLE_RATE"}, 1.0),
	}

	switch strings.ToLower(cfg.Environment) {
	case EnvDevelopment, EnvProduction, EnvTest:
		cfg.Environment = strings.ToLower(cfg.Environment)
	default:
		return nil, fmt.Errorf("unsupported environment %q", cfg.Environment)
	}

	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return nil, fmt.Errorf("STATIONBOOK_TRACING_SAMPLE_RATE must be between 0 and 1, got %v", cfg.TracingSampleRate)
	}

	if cfg.TracingEnabled && cfg.OTLPEndpoint == "" {
		return nil, fmt.Errorf("STATIONBOOK_OTLP_ENDPOINT must be set when tracing is enabled")
	}

	return cfg, nil
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

// getEnvBoolAny returns the first set boolean environment variable value from keys, or def.
func getEnvBoolAny(keys []string, def bool) bool {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "true" || v == "1" || v == "yes" {
				return true
			}
			if v == "false" || v == "0" || v == "no" {
				return false
			}
		}
	}
	return def
}

// getEnvFloatAny returns the first set float environment variable value from keys, or def.
func getEnvFloatAny(keys []string, def float64) float64 {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return def
}
