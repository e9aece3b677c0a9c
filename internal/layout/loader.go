/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package layout reads station layouts and booking plans from YAML.
package layout

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/friendsincode/stationbook/internal/plan"
	"github.com/friendsincode/stationbook/internal/station"
	"github.com/friendsincode/stationbook/internal/timeline"
)

// ReferenceDay anchors clock-only times ("10:15") on the single booking
// timeline. No calendar semantics are attached to it.
var ReferenceDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrMissingStationID is returned when the layout has no station id.
var ErrMissingStationID = errors.New("station id is required")

var clockLayouts = []string{"15:04", "15:04:05"}

// Load reads and validates a layout file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if f.Station.ID.IsZero() {
		return nil, ErrMissingStationID
	}

	v := validator.New()
	if err := v.Struct(f); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	for i, e := range f.Plan {
		if _, err := e.Instant(); err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
	}
	return &f, nil
}

// Build creates the station described by the layout.
func (f *File) Build(logger zerolog.Logger) (*station.Station, error) {
	st := station.New(f.Station.ID.Identity, logger)
	for _, line := range f.Station.Lines {
		st.AddLine(line)
	}
	for _, id := range f.Station.Platforms {
		if err := st.AddPlatform(id); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Requests converts the plan into runner requests.
func (f *File) Requests() ([]plan.Request, error) {
	out := make([]plan.Request, 0, len(f.Plan))
	for i, e := range f.Plan {
		req, err := e.Request()
		if err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
		out = append(out, req)
	}
	return out, nil
}

// Request converts a single entry.
func (e Entry) Request() (plan.Request, error) {
	class, err := timeline.ParseClass(e.Class)
	if err != nil {
		return plan.Request{}, err
	}
	at, err := e.Instant()
	if err != nil {
		return plan.Request{}, err
	}
	return plan.Request{Label: e.Label, PlatformID: e.Platform, Class: class, At: at}, nil
}

// Instant parses the entry time.
func (e Entry) Instant() (time.Time, error) {
	return ParseInstant(e.At)
}

// ParseInstant accepts "HH:MM", "HH:MM:SS" on ReferenceDay, or RFC3339.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ReferenceDay.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM, HH:MM:SS or RFC3339", s)
	}
	return t, nil
}
