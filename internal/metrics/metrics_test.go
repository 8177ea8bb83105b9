// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		method   string
		endpoint string
		status   string
	}{
		{"POST", "/api/v1/sessions", "201"},
		{"POST", "/api/v1/sessions/{id}/actions/{action}", "200"},
		{"GET", "/api/v1/menu", "503"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.endpoint, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.status)
			before := getCounterValue(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.status, 25*time.Millisecond)

			if got := getCounterValue(counter); got != before+1 {
				t.Errorf("api_requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordDispatch(t *testing.T) {
	counter := DispatchActions.WithLabelValues("search_movie", "success")
	before := getCounterValue(counter)

	RecordDispatch("search_movie", "success", 40*time.Millisecond)
	RecordDispatch("search_movie", "success", 10*time.Millisecond)

	if got := getCounterValue(counter); got != before+2 {
		t.Errorf("dispatch_actions_total = %v, want %v", got, before+2)
	}
}

func TestRecordInvalidTransition(t *testing.T) {
	counter := InvalidTransitions.WithLabelValues("greeting", "add_to_watchlist")
	before := getCounterValue(counter)

	RecordInvalidTransition("greeting", "add_to_watchlist")

	if got := getCounterValue(counter); got != before+1 {
		t.Errorf("invalid transitions = %v, want %v", got, before+1)
	}
}

func TestRecordSessionEnded(t *testing.T) {
	ActiveSessions.Set(3)
	RecordSessionEnded("idle")

	if got := testutil.ToFloat64(ActiveSessions); got != 3 {
		t.Errorf("sessions_active = %v, want 3 (owned by the session table)", got)
	}
	if got := testutil.ToFloat64(SessionsEnded.WithLabelValues("idle")); got < 1 {
		t.Errorf("sessions_ended_total{reason=idle} = %v, want >= 1", got)
	}
}

func TestRecordEventAndGatewayFetch(t *testing.T) {
	RecordEvent("movie_details")
	RecordGatewayFetch("item", "cache")
	RecordUpstreamRequest("movie_details", "2xx", 120*time.Millisecond)

	if got := testutil.ToFloat64(EventsEmitted.WithLabelValues("movie_details")); got < 1 {
		t.Errorf("events_emitted_total = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(GatewayFetches.WithLabelValues("item", "cache")); got < 1 {
		t.Errorf("gateway_fetches_total = %v, want >= 1", got)
	}
}

// TestMetricGathering lints every registered collector.
func TestMetricGathering(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
