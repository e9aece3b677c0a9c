/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/friendsincode/stationbook/internal/events"
	"github.com/friendsincode/stationbook/internal/station"
	"github.com/friendsincode/stationbook/internal/telemetry"
	"github.com/friendsincode/stationbook/internal/timeline"
)

func clock(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func newTestStation(t *testing.T) *station.Station {
	t.Helper()

	st := station.New(station.IntegerID(1001), zerolog.Nop())
	st.AddLine("Blue Line")
	st.AddLine("Yellow Line")
	for _, id := range []int{1, 2} {
		if err := st.AddPlatform(id); err != nil {
			t.Fatalf("add platform %d: %v", id, err)
		}
	}
	return st
}

func TestRunContinuesPastConflicts(t *testing.T) {
	st := newTestStation(t)
	metrics := telemetry.NewMetrics()
	runner := NewRunner(st, metrics, nil, zerolog.Nop())

	report, err := runner.Run(context.Background(), []Request{
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(10, 0)},
		{PlatformID: 1, Class: timeline.Through, At: clock(10, 30)},
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(10, 15)},
		{PlatformID: 1, Class: timeline.Through, At: clock(10, 35)},
		{PlatformID: 1, Class: timeline.Through, At: clock(10, 20)},
		{PlatformID: 2, Class: timeline.Stoppage, At: clock(10, 15)},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOutcomes := []Outcome{OutcomeAccepted, OutcomeAccepted, OutcomeRefused, OutcomeRefused, OutcomeAccepted, OutcomeAccepted}
	if len(report.Results) != len(wantOutcomes) {
		t.Fatalf("results = %d, want %d", len(report.Results), len(wantOutcomes))
	}
	for i, want := range wantOutcomes {
		if got := report.Results[i].Outcome; got != want {
			t.Errorf("result[%d] outcome = %q, want %q", i, got, want)
		}
	}
	if report.Accepted != 4 || report.Refused != 2 {
		t.Fatalf("accepted/refused = %d/%d, want 4/2", report.Accepted, report.Refused)
	}

	refused := report.Results[2]
	if refused.Conflict == nil || !refused.Conflict.Existing.Equal(clock(10, 0)) {
		t.Fatalf("refused conflict = %+v, want existing 10:00", refused.Conflict)
	}
	if refused.Booking != nil {
		t.Fatal("refused result must not carry a booking")
	}
	if report.Results[0].Booking == nil || report.Results[0].Booking.ID == "" {
		t.Fatal("accepted result must carry a booking id")
	}

	if got := testutil.ToFloat64(metrics.BookingAttempts.WithLabelValues("stoppage", telemetry.OutcomeRefused)); got != 1 {
		t.Errorf("refused stoppage metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.BookingAttempts.WithLabelValues("through", telemetry.OutcomeAccepted)); got != 2 {
		t.Errorf("accepted through metric = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.BookedEvents.WithLabelValues("1", "through")); got != 2 {
		t.Errorf("booked throughs on platform 1 = %v, want 2", got)
	}
}

func TestRunStopsOnUnknownPlatform(t *testing.T) {
	st := newTestStation(t)
	bus := events.NewBus()
	notFound := bus.Subscribe(events.EventPlatformNotFound)
	runner := NewRunner(st, nil, bus, zerolog.Nop())

	report, err := runner.Run(context.Background(), []Request{
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(10, 0)},
		{Label: "ghost platform", PlatformID: 9, Class: timeline.Stoppage, At: clock(11, 0)},
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(12, 0)},
	})
	if !errors.Is(err, station.ErrPlatformNotFound) {
		t.Fatalf("err = %v, want ErrPlatformNotFound", err)
	}
	if errors.Is(err, station.ErrSchedulingConflict) {
		t.Fatal("not-found must not match the conflict sentinel")
	}
	if report == nil || len(report.Results) != 1 || report.Accepted != 1 {
		t.Fatalf("partial report = %+v, want the first booking only", report)
	}

	select {
	case p := <-notFound:
		if p["platform_id"] != 9 {
			t.Fatalf("payload = %v", p)
		}
	default:
		t.Fatal("expected a platform-not-found event")
	}

	// The request after the failure never ran.
	stoppages, _ := st.Instants(1, timeline.Stoppage)
	if len(stoppages) != 1 {
		t.Fatalf("stoppages = %v, want only 10:00", stoppages)
	}
}

func TestBookPublishesOutcomes(t *testing.T) {
	st := newTestStation(t)
	bus := events.NewBus()
	accepted := bus.Subscribe(events.EventBookingAccepted)
	refused := bus.Subscribe(events.EventBookingRefused)
	runner := NewRunner(st, nil, bus, zerolog.Nop())

	if _, err := runner.Book(context.Background(), Request{Label: "IC 101", PlatformID: 2, Class: timeline.Through, At: clock(8, 0)}); err != nil {
		t.Fatalf("book: %v", err)
	}
	res, err := runner.Book(context.Background(), Request{Label: "IC 103", PlatformID: 2, Class: timeline.Through, At: clock(8, 9)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if res.Outcome != OutcomeRefused {
		t.Fatalf("outcome = %q, want refused", res.Outcome)
	}

	a := <-accepted
	if a["label"] != "IC 101" || a["station_id"] != "1001" {
		t.Fatalf("accepted payload = %v", a)
	}
	r := <-refused
	if r["label"] != "IC 103" || !r["existing"].(time.Time).Equal(clock(8, 0)) {
		t.Fatalf("refused payload = %v", r)
	}
}

func TestBookUnknownClassIsAnError(t *testing.T) {
	runner := NewRunner(newTestStation(t), nil, nil, zerolog.Nop())
	if _, err := runner.Book(context.Background(), Request{PlatformID: 1, Class: "freight", At: clock(9, 0)}); !errors.Is(err, timeline.ErrUnknownClass) {
		t.Fatalf("err = %v, want ErrUnknownClass", err)
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	runner := NewRunner(newTestStation(t), nil, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx, []Request{{PlatformID: 1, Class: timeline.Stoppage, At: clock(9, 0)}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(report.Results) != 0 {
		t.Fatalf("results = %v, want none", report.Results)
	}
}

func TestBookRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)

	runner := NewRunner(newTestStation(t), nil, nil, zerolog.Nop())
	if _, err := runner.Run(context.Background(), []Request{
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(9, 0)},
		{PlatformID: 1, Class: timeline.Stoppage, At: clock(9, 10)},
	}); err != nil {
		t.Fatalf("run: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	var outcomes []string
	for _, span := range spans {
		if span.Name() != "plan.book" {
			t.Fatalf("span name = %q", span.Name())
		}
		for _, kv := range span.Attributes() {
			if kv.Key == "booking.outcome" {
				outcomes = append(outcomes, kv.Value.AsString())
			}
		}
	}
	if len(outcomes) != 2 || outcomes[0] != telemetry.OutcomeAccepted || outcomes[1] != telemetry.OutcomeRefused {
		t.Fatalf("outcomes = %v, want [accepted refused]", outcomes)
	}
}
