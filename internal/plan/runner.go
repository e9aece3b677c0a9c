/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package plan books a batch of requests against a station.
//
// A refused booking is recorded in the report and the batch continues. An
// unknown platform stops the batch and is returned to the caller together with
// the report so far.
package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/friendsincode/stationbook/internal/events"
	"github.com/friendsincode/stationbook/internal/station"
	"github.com/friendsincode/stationbook/internal/telemetry"
	"github.com/friendsincode/stationbook/internal/timeline"
)

const tracerName = "github.com/friendsincode/stationbook/internal/plan"

// Request is one booking to attempt.
type Request struct {
	Label      string
	PlatformID int
	Class      timeline.Class
	At         time.Time
}

// Outcome of a single request.
type Outcome string

const (
	OutcomeAccepted Outcome = telemetry.OutcomeAccepted
	OutcomeRefused  Outcome = telemetry.OutcomeRefused
)

// Result pairs a request with what happened to it.
type Result struct {
	Request  Request
	Outcome  Outcome
	Booking  *station.Booking
	Conflict *timeline.ConflictError
}

// Report summarizes a run.
type Report struct {
	Results  []Result
	Accepted int
	Refused  int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeAccepted:
		r.Accepted++
	case OutcomeRefused:
		r.Refused++
	}
}

// Runner books requests against one station. Metrics and bus are optional.
type Runner struct {
	station *station.Station
	metrics *telemetry.Metrics
	bus     *events.Bus
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// NewRunner creates a runner for st.
func NewRunner(st *station.Station, metrics *telemetry.Metrics, bus *events.Bus, logger zerolog.Logger) *Runner {
	return &Runner{
		station: st,
		metrics: metrics,
		bus:     bus,
		tracer:  telemetry.Tracer(tracerName),
		logger:  logger.With().Str("component", "plan_runner").Logger(),
	}
}

// Run books every request in order.
func (r *Runner) Run(ctx context.Context, requests []Request) (*Report, error) {
	report := &Report{}
	for i, req := range requests {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := r.Book(ctx, req)
		if err != nil {
			return report, fmt.Errorf("request %d (%s): %w", i+1, describe(req), err)
		}
		report.add(res)
	}

	r.logger.Info().
		Int("accepted", report.Accepted).
		Int("refused", report.Refused).
		Msg("plan complete")
	return report, nil
}

// Book attempts a single request. A conflict is reported as OutcomeRefused
// with a nil error; only an unknown platform or class is returned as an error.
func (r *Runner) Book(ctx context.Context, req Request) (Result, error) {
	_, span := r.tracer.Start(ctx, "plan.book",
		trace.WithAttributes(telemetry.BookingAttributes(req.PlatformID, string(req.Class), req.At)...))
	defer span.End()

	booking, err := r.station.Schedule(req.PlatformID, req.Class, req.At)
	if err == nil {
		r.metrics.ObserveBooking(string(req.Class), telemetry.OutcomeAccepted)
		r.recordBooked(req.PlatformID, req.Class)
		telemetry.RecordOutcome(span, telemetry.OutcomeAccepted, nil)
		r.bus.Publish(events.EventBookingAccepted, events.Payload{
			"booking_id":  booking.ID,
			"station_id":  r.station.ID().String(),
			"platform_id": booking.PlatformID,
			"class":       string(booking.Class),
			"at":          booking.At,
			"label":       req.Label,
		})
		return Result{Request: req, Outcome: OutcomeAccepted, Booking: &booking}, nil
	}

	var conflict *timeline.ConflictError
	switch {
	case errors.As(err, &conflict):
		r.metrics.ObserveBooking(string(req.Class), telemetry.OutcomeRefused)
		telemetry.RecordOutcome(span, telemetry.OutcomeRefused, nil)
		r.bus.Publish(events.EventBookingRefused, events.Payload{
			"station_id":  r.station.ID().String(),
			"platform_id": req.PlatformID,
			"class":       string(req.Class),
			"at":          req.At,
			"existing":    conflict.Existing,
			"label":       req.Label,
		})
		return Result{Request: req, Outcome: OutcomeRefused, Conflict: conflict}, nil

	case errors.Is(err, station.ErrPlatformNotFound):
		r.metrics.ObserveBooking(string(req.Class), telemetry.OutcomePlatformNotFound)
		telemetry.RecordOutcome(span, telemetry.OutcomePlatformNotFound, err)
		r.bus.Publish(events.EventPlatformNotFound, events.Payload{
			"station_id":  r.station.ID().String(),
			"platform_id": req.PlatformID,
			"label":       req.Label,
		})
		r.logger.Error().Err(err).Int("platform_id", req.PlatformID).Msg("booking against unknown platform")
	}

	return Result{}, err
}

func (r *Runner) recordBooked(platformID int, class timeline.Class) {
	if r.metrics == nil {
		return
	}
	instants, err := r.station.Instants(platformID, class)
	if err != nil {
		return
	}
	r.metrics.SetBooked(platformID, string(class), len(instants))
}

func describe(req Request) string {
	if req.Label != "" {
		return req.Label
	}
	return fmt.Sprintf("%s on platform %d at %s", req.Class, req.PlatformID, req.At.Format(time.TimeOnly))
}
