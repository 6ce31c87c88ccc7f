package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
)

func newScheduleClient(server *httptest.Server) *AeroDataBoxClient {
	return NewAeroDataBoxClient(server.URL, "flights/airports", "secret-key", 5*time.Second, nil, logger.NewNop())
}

func TestScheduleFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-market-key"); got != "secret-key" {
			t.Errorf("api key header = %q", got)
		}
		// Boundaries travel URL-encoded inside the path
		if !strings.Contains(r.URL.EscapedPath(), "/icao/EDDF/2025-01-02T00%3A00/2025-01-02T12%3A00") {
			t.Errorf("unexpected path: %s", r.URL.EscapedPath())
		}
		if r.URL.Query().Get("withLeg") != "true" {
			t.Errorf("withLeg missing: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{
			"departures": [{"number": "LH123", "aircraft": {"reg": "D-ABCD"}}],
			"arrivals": [{"number": "LH456"}]
		}`)
	}))
	defer server.Close()

	client := newScheduleClient(server)
	page, err := client.Fetch(context.Background(), entity.WindowRequest{
		AirportCode: "EDDF",
		CodeType:    "icao",
		TimeFrom:    "2025-01-02T00:00",
		TimeTo:      "2025-01-02T12:00",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Outcome != entity.OutcomeSuccess {
		t.Fatalf("outcome = %v", page.Outcome)
	}
	if len(page.Departures) != 1 || len(page.Arrivals) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Departures[0]["number"] != "LH123" {
		t.Errorf("departure number = %v", page.Departures[0]["number"])
	}
}

func TestScheduleFetchNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newScheduleClient(server)
	page, err := client.Fetch(context.Background(), entity.WindowRequest{AirportCode: "EDDN", TimeFrom: "a", TimeTo: "b"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Outcome != entity.OutcomeEmpty {
		t.Errorf("outcome = %v, want OutcomeEmpty", page.Outcome)
	}
}

func TestScheduleFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := newScheduleClient(server)
	_, err := client.Fetch(context.Background(), entity.WindowRequest{AirportCode: "EDDF", TimeFrom: "a", TimeTo: "b"})

	var provErr *entity.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Fetch = %v, want ProviderError", err)
	}
	if provErr.Status != http.StatusForbidden || !strings.Contains(provErr.Body, "quota exceeded") {
		t.Errorf("ProviderError = %+v", provErr)
	}
}

func TestScheduleFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newScheduleClient(server)
	_, err := client.Fetch(context.Background(), entity.WindowRequest{AirportCode: "EDDF", TimeFrom: "a", TimeTo: "b"})

	var provErr *entity.ProviderError
	if !errors.As(err, &provErr) || provErr.Err == nil {
		t.Fatalf("Fetch = %v, want ProviderError wrapping transport cause", err)
	}
}
