/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Booking outcomes used as the "outcome" label.
const (
	OutcomeAccepted         = "accepted"
	OutcomeRefused          = "refused"
	OutcomePlatformNotFound = "platform_not_found"
)

// Metrics holds booking counters on a dedicated registry.
type Metrics struct {
	registry        *prometheus.Registry
	BookingAttempts *prometheus.CounterVec
	BookedEvents    *prometheus.GaugeVec
}

// NewMetrics creates and registers the booking collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stationbook",
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by event class and outcome.",
		}, []string{"class", "outcome"}),
		BookedEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stationbook",
			Name:      "booked_events",
			Help:      "Events currently recorded per platform and class.",
		}, []string{"platform", "class"}),
	}
	m.registry.MustRegister(m.BookingAttempts, m.BookedEvents)
	return m
}

// ObserveBooking counts one attempt. Safe on a nil receiver.
func (m *Metrics) ObserveBooking(class, outcome string) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(class, outcome).Inc()
}

// SetBooked records how many events of a class a platform holds.
func (m *Metrics) SetBooked(platformID int, class string, n int) {
	if m == nil {
		return
	}
	m.BookedEvents.WithLabelValues(strconv.Itoa(platformID), class).Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes the registry in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
