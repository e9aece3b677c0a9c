/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/stationbook/internal/station"
)

// File is the root of a layout document: one station and an optional
// booking plan to run against it.
type File struct {
	Station StationSpec `yaml:"station" validate:"required"`
	Plan    []Entry     `yaml:"plan" validate:"dive"`
}

// StationSpec describes a station and its fixed infrastructure.
type StationSpec struct {
	ID        StationID `yaml:"id"`
	Lines     []string  `yaml:"lines" validate:"dive,required"`
	Platforms []int     `yaml:"platforms" validate:"required,min=1,unique"`
}

// Entry is one booking request in a plan. Platform is not checked against the
// station here; an unknown platform is reported when the plan runs.
type Entry struct {
	Label    string `yaml:"label"`
	Platform int    `yaml:"platform"`
	Class    string `yaml:"class" validate:"required,oneof=stoppage through"`
	At       string `yaml:"at" validate:"required"`
}

// StationID decodes a YAML scalar into a string or integer station identity.
// Quoted scalars stay strings, so `id: "1001"` and `id: 1001` differ.
type StationID struct {
	station.Identity
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StationID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: station id must be a scalar", node.Line)
	}
	if node.Value == "" {
		return fmt.Errorf("line %d: station id is empty", node.Line)
	}
	if node.ShortTag() == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("line %d: station id %q: %w", node.Line, node.Value, err)
		}
		s.Identity = station.IntegerID(n)
		return nil
	}
	s.Identity = station.StringID(node.Value)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s StationID) MarshalYAML() (any, error) {
	if n, ok := s.IntegerValue(); ok {
		return n, nil
	}
	return s.String(), nil
}
