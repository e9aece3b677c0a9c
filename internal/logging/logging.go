/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process, writing to stderr so command
// output on stdout stays clean.
func Setup(environment string) zerolog.Logger {
	return SetupWithWriter(environment, os.Stderr)
}

// SetupWithWriter configures zerolog to write human-readable output to out.
func SetupWithWriter(environment string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: environment == "test"}).
		With().Timestamp().Logger().
		Level(LevelFor(environment))
	log.Logger = logger
	return logger
}

// LevelFor maps an environment name to the default log level.
func LevelFor(environment string) zerolog.Level {
	switch environment {
	case "development":
		return zerolog.DebugLevel
	case "test":
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}
