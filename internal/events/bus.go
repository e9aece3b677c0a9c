/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package events fans booking outcomes out to in-process listeners.
package events

import "sync"

// EventType enumerates event categories.
type EventType string

const (
	EventBookingAccepted  EventType = "booking.accepted"
	EventBookingRefused   EventType = "booking.refused"
	EventPlatformNotFound EventType = "booking.platform_not_found"
)

// Payload generic event payload.
type Payload map[string]any

// Subscriber receives event payloads.
type Subscriber chan Payload

// Bus is an in-process pubsub. Publishing never blocks: a subscriber whose
// buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[EventType][]Subscriber
	buffer int
}

// NewBus creates an event bus with the default subscriber buffer.
func NewBus() *Bus {
	return NewBusWithBuffer(8)
}

// NewBusWithBuffer creates an event bus whose subscribers buffer n payloads.
func NewBusWithBuffer(n int) *Bus {
	if n < 1 {
		n = 1
	}
	return &Bus{subs: make(map[EventType][]Subscriber), buffer: n}
}

// Subscribe registers a subscriber for event type.
func (b *Bus) Subscribe(eventType EventType) Subscriber {
	ch := make(Subscriber, b.buffer)
	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], ch)
	b.mu.Unlock()
	return ch
}

// Publish sends payload to subscribers. A nil bus drops the event.
func (b *Bus) Publish(eventType EventType, payload Payload) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[eventType] {
		select {
		case sub <- payload:
		default:
		}
	}
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(eventType EventType, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[eventType]
	for i, candidate := range subs {
		if candidate == sub {
			subs = append(subs[:i], subs[i+1:]...)
			close(sub)
			break
		}
	}
	b.subs[eventType] = subs
}
