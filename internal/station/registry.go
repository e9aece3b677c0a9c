/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package station

import (
	"errors"
	"fmt"
	"sort"

	"github.com/friendsincode/stationbook/internal/timeline"
)

var (
	// ErrPlatformNotFound indicates the platform id was never added to the station.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrDuplicatePlatform indicates a platform id was added twice.
	ErrDuplicatePlatform = errors.New("platform already exists")
)

// Registry owns the platform timelines of one station, keyed by platform id.
type Registry struct {
	platforms map[int]*timeline.Timeline
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{platforms: make(map[int]*timeline.Timeline)}
}

// Add creates an empty timeline under id. Ids must be unique; re-adding one
// returns ErrDuplicatePlatform and keeps the existing timeline.
func (r *Registry) Add(id int) (*timeline.Timeline, error) {
	if _, ok := r.platforms[id]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicatePlatform, id)
	}
	tl := timeline.New(id)
	r.platforms[id] = tl
	return tl, nil
}

// Resolve returns the timeline for id.
func (r *Registry) Resolve(id int) (*timeline.Timeline, error) {
	tl, ok := r.platforms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPlatformNotFound, id)
	}
	return tl, nil
}

// IDs returns the registered platform ids in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.platforms))
	for id := range r.platforms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of platforms.
func (r *Registry) Len() int {
	return len(r.platforms)
}
