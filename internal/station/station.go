/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package station routes booking requests to the platforms of a station.
package station

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/stationbook/internal/timeline"
)

// ErrSchedulingConflict is returned (wrapped in a *timeline.ConflictError) when
// a booking is refused. It is an expected outcome, not a failure of the call.
var ErrSchedulingConflict = timeline.ErrSchedulingConflict

// Line is a named line serving the station.
type Line struct {
	Name string
}

// Booking records an accepted event.
type Booking struct {
	ID         string
	PlatformID int
	Class      timeline.Class
	At         time.Time
}

// Station is the booking entry point for a set of platforms.
//
// A Station is not safe for concurrent use. Hosts that book from several
// goroutines must hold one lock per station around every call.
type Station struct {
	id        Identity
	lines     []Line
	platforms *Registry
	logger    zerolog.Logger
}

// New creates a station with no lines or platforms.
func New(id Identity, logger zerolog.Logger) *Station {
	return &Station{
		id:        id,
		platforms: NewRegistry(),
		logger:    logger.With().Str("component", "station").Str("station_id", id.String()).Logger(),
	}
}

// ID returns the station identity.
func (s *Station) ID() Identity {
	return s.id
}

// AddLine appends a line.
func (s *Station) AddLine(name string) {
	s.lines = append(s.lines, Line{Name: name})
}

// Lines returns the station lines in insertion order.
func (s *Station) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

// DescribeLines renders the lines as a bulleted list.
func (s *Station) DescribeLines() string {
	var b strings.Builder
	b.WriteString("Lines:\n")
	for _, line := range s.lines {
		fmt.Fprintf(&b, "- %s\n", line.Name)
	}
	return b.String()
}

// AddPlatform registers an empty platform. Platform ids must be unique within
// the station.
func (s *Station) AddPlatform(id int) error {
	if _, err := s.platforms.Add(id); err != nil {
		return err
	}
	s.logger.Debug().Int("platform_id", id).Msg("platform added")
	return nil
}

// Platforms returns the platform ids in ascending order.
func (s *Station) Platforms() []int {
	return s.platforms.IDs()
}

// Instants returns the booked instants of a class on a platform.
func (s *Station) Instants(platformID int, class timeline.Class) ([]time.Time, error) {
	tl, err := s.platforms.Resolve(platformID)
	if err != nil {
		return nil, err
	}
	return tl.Instants(class), nil
}

// ScheduleStoppage books a stoppage on the platform.
func (s *Station) ScheduleStoppage(platformID int, at time.Time) (Booking, error) {
	return s.Schedule(platformID, timeline.Stoppage, at)
}

// ScheduleThrough books a through event on the platform.
func (s *Station) ScheduleThrough(platformID int, at time.Time) (Booking, error) {
	return s.Schedule(platformID, timeline.Through, at)
}

// Schedule books an event of the given class.
//
// An unknown platform yields an error matching ErrPlatformNotFound. A refused
// booking yields a *timeline.ConflictError matching ErrSchedulingConflict; the
// caller decides whether to try another time. Neither case changes any
// platform state.
func (s *Station) Schedule(platformID int, class timeline.Class, at time.Time) (Booking, error) {
	tl, err := s.platforms.Resolve(platformID)
	if err != nil {
		return Booking{}, err
	}

	if err := tl.Book(class, at); err != nil {
		var conflict *timeline.ConflictError
		if errors.As(err, &conflict) {
			s.logger.Warn().
				Int("platform_id", platformID).
				Str("class", string(class)).
				Time("requested", at).
				Time("existing", conflict.Existing).
				Msg("booking refused")
		}
		return Booking{}, err
	}

	booking := Booking{
		ID:         uuid.NewString(),
		PlatformID: platformID,
		Class:      class,
		At:         timeline.Resolution(at),
	}
	s.logger.Debug().
		Str("booking_id", booking.ID).
		Int("platform_id", platformID).
		Str("class", string(class)).
		Time("at", booking.At).
		Msg("booking accepted")
	return booking, nil
}

// Check returns the instants that would refuse a booking, without booking.
func (s *Station) Check(platformID int, class timeline.Class, at time.Time) ([]time.Time, error) {
	tl, err := s.platforms.Resolve(platformID)
	if err != nil {
		return nil, err
	}
	return tl.Conflicts(class, at)
}
