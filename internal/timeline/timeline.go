/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timeline enforces minimum separation between train events booked on
// a single platform.
package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Class enumerates the kinds of events a platform can host.
type Class string

const (
	Stoppage Class = "stoppage" // train stops and dwells
	Through  Class = "through"  // train passes without stopping
)

// Minimum separation between two events of the same class on one platform.
const (
	StoppageWindow = 30 * time.Minute
	ThroughWindow  = 10 * time.Minute
)

var (
	// ErrSchedulingConflict indicates the requested instant is too close to an
	// existing event of the same class.
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrUnknownClass indicates an event class other than stoppage or through.
	ErrUnknownClass = errors.New("unknown event class")
)

// Classes lists every supported class in display order.
func Classes() []Class {
	return []Class{Stoppage, Through}
}

// ParseClass converts user input into a Class.
func ParseClass(s string) (Class, error) {
	switch Class(strings.ToLower(strings.TrimSpace(s))) {
	case Stoppage:
		return Stoppage, nil
	case Through:
		return Through, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Window returns the minimum separation for the class, or 0 if unknown.
func (c Class) Window() time.Duration {
	switch c {
	case Stoppage:
		return StoppageWindow
	case Through:
		return ThroughWindow
	}
	return 0
}

// Valid reports whether c is a supported class.
func (c Class) Valid() bool {
	return c.Window() > 0
}

// ConflictError describes a refused booking. It matches ErrSchedulingConflict
// under errors.Is.
type ConflictError struct {
	PlatformID int
	Class      Class
	Requested  time.Time
	Existing   time.Time
	Window     time.Duration
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s at %s on platform %d conflicts with existing %s at %s (minimum separation %s)",
		e.Class, e.Requested.Format(time.TimeOnly), e.PlatformID, e.Class, e.Existing.Format(time.TimeOnly), e.Window)
}

// Is makes errors.Is(err, ErrSchedulingConflict) hold for conflicts.
func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}

// Gap returns the absolute distance between the requested and existing instants.
func (e *ConflictError) Gap() time.Duration {
	d := e.Requested.Sub(e.Existing)
	if d < 0 {
		return -d
	}
	return d
}

// Resolution drops sub-second precision. Bookings are kept and compared in
// whole seconds.
func Resolution(at time.Time) time.Time {
	return at.Truncate(time.Second)
}

// Timeline holds the booked instants of one platform.
//
// Each class is kept as a sorted slice so the window check is a binary search.
// A Timeline is not safe for concurrent use; callers serialize access.
type Timeline struct {
	id       int
	stoppage []time.Time
	through  []time.Time
}

// New creates an empty timeline for the given platform.
func New(platformID int) *Timeline {
	return &Timeline{id: platformID}
}

// ID returns the platform identifier.
func (t *Timeline) ID() int {
	return t.id
}

// BookStoppage records a stoppage at the given instant unless another stoppage
// lies strictly within StoppageWindow of it.
func (t *Timeline) BookStoppage(at time.Time) error {
	return t.Book(Stoppage, at)
}

// BookThrough records a through event at the given instant unless another
// through event lies strictly within ThroughWindow of it.
func (t *Timeline) BookThrough(at time.Time) error {
	return t.Book(Through, at)
}

// Book records an event of the given class. On conflict the timeline is left
// unchanged and a *ConflictError is returned.
func (t *Timeline) Book(class Class, at time.Time) error {
	set, err := t.set(class)
	if err != nil {
		return err
	}
	at = Resolution(at)

	window := class.Window()
	idx := firstInWindow(*set, at, window)
	if idx < len(*set) && (*set)[idx].Before(at.Add(window)) {
		return &ConflictError{
			PlatformID: t.id,
			Class:      class,
			Requested:  at,
			Existing:   (*set)[idx],
			Window:     window,
		}
	}

	pos := sort.Search(len(*set), func(i int) bool { return (*set)[i].After(at) })
	*set = append(*set, time.Time{})
	copy((*set)[pos+1:], (*set)[pos:])
	(*set)[pos] = at
	return nil
}

// Conflicts returns the existing instants of the class that would refuse a
// booking at the given instant. The timeline is not modified.
func (t *Timeline) Conflicts(class Class, at time.Time) ([]time.Time, error) {
	set, err := t.set(class)
	if err != nil {
		return nil, err
	}
	at = Resolution(at)

	window := class.Window()
	var out []time.Time
	for i := firstInWindow(*set, at, window); i < len(*set) && (*set)[i].Before(at.Add(window)); i++ {
		out = append(out, (*set)[i])
	}
	return out, nil
}

// Stoppages returns the booked stoppage instants in ascending order.
func (t *Timeline) Stoppages() []time.Time {
	return append([]time.Time(nil), t.stoppage...)
}

// Throughs returns the booked through instants in ascending order.
func (t *Timeline) Throughs() []time.Time {
	return append([]time.Time(nil), t.through...)
}

// Instants returns the booked instants of a class in ascending order.
func (t *Timeline) Instants(class Class) []time.Time {
	switch class {
	case Stoppage:
		return t.Stoppages()
	case Through:
		return t.Throughs()
	}
	return nil
}

// Len returns the number of booked events of a class.
func (t *Timeline) Len(class Class) int {
	switch class {
	case Stoppage:
		return len(t.stoppage)
	case Through:
		return len(t.through)
	}
	return 0
}

func (t *Timeline) set(class Class) (*[]time.Time, error) {
	switch class {
	case Stoppage:
		return &t.stoppage, nil
	case Through:
		return &t.through, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownClass, string(class))
}

// firstInWindow returns the index of the first instant strictly after
// at-window. Instants exactly one window away are outside it.
func firstInWindow(set []time.Time, at time.Time, window time.Duration) int {
	lower := at.Add(-window)
	return sort.Search(len(set), func(i int) bool { return set[i].After(lower) })
}
