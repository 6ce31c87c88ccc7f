package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
)

type fakeTokens struct {
	mints int
}

func (f *fakeTokens) AcquireToken(ctx context.Context) (string, error) {
	f.mints++
	return fmt.Sprintf("tok%d", f.mints), nil
}

func newTestClient(server *httptest.Server, tokens TokenSource) *OpenSkyClient {
	return NewOpenSkyClient(tokens, server.URL, "/flights/all", 5*time.Second, 2, 300*time.Second, 0, nil, logger.NewNop())
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
			t.Errorf("Authorization = %q, want Bearer tok1", got)
		}
		if r.URL.Query().Get("begin") != "1735776000" || r.URL.Query().Get("end") != "1735862399" {
			t.Errorf("unexpected window params: %s", r.URL.RawQuery)
		}
		w.Header().Set("X-Rate-Limit-Remaining", "399")
		fmt.Fprint(w, `[{"icao24":"3c6444","firstSeen":1735780000}]`)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	result, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1735776000, EndEpoch: 1735862399})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Outcome != entity.OutcomeSuccess || len(result.Records) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Records[0]["icao24"] != "3c6444" {
		t.Errorf("icao24 = %v", result.Records[0]["icao24"])
	}
}

func TestFetchAirportFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("airport"); got != "EDDF" {
			t.Errorf("airport param = %q, want EDDF", got)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	req := entity.WindowRequest{AirportCode: "EDDF", CodeType: entity.CodeTypeAirport, BeginEpoch: 1, EndEpoch: 2}
	if _, err := client.Fetch(context.Background(), req); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestFetchRateLimitBackoff(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("X-Rate-Limit-Retry-After-Seconds", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[{"icao24":"abc123"}]`)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	var slept []time.Duration
	client.sleep = func(d time.Duration) { slept = append(slept, d) }

	result, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Outcome != entity.OutcomeSuccess || len(result.Records) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(slept) != 1 || slept[0] != 3*time.Second {
		t.Errorf("slept = %v, want one 3s sleep", slept)
	}
}

func TestFetchRateLimitDefaultBackoff(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// no retry-after header at all
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	var slept []time.Duration
	client.sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(slept) != 1 || slept[0] != 300*time.Second {
		t.Errorf("slept = %v, want one 300s default sleep", slept)
	}
}

func TestFetchRateLimitAttemptCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Rate-Limit-Retry-After-Seconds", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenSkyClient(&fakeTokens{}, server.URL, "/flights/all", 5*time.Second, 2, time.Second, 2, nil, logger.NewNop())
	client.sleep = func(time.Duration) {}

	_, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2})
	var provErr *entity.ProviderError
	if !errors.As(err, &provErr) || provErr.Status != http.StatusTooManyRequests {
		t.Fatalf("Fetch = %v, want ProviderError with 429", err)
	}
}

func TestFetchRemintsTokenOn401(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok2" {
			t.Errorf("retry Authorization = %q, want fresh Bearer tok2", got)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	tokens := &fakeTokens{}
	client := newTestClient(server, tokens)

	result, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Outcome != entity.OutcomeSuccess {
		t.Fatalf("result = %+v", result)
	}
	if tokens.mints != 2 {
		t.Errorf("token mints = %d, want 2 (initial + one remint)", tokens.mints)
	}
}

func TestFetchAuthExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokens{}
	client := newTestClient(server, tokens)

	_, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2})
	if !errors.Is(err, entity.ErrAuthExhausted) {
		t.Fatalf("Fetch = %v, want ErrAuthExhausted", err)
	}
}

func TestFetchNotFoundSkips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	result, err := client.Fetch(context.Background(), entity.WindowRequest{AirportCode: "EDDN", BeginEpoch: 1, EndEpoch: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Outcome != entity.OutcomeNotFound {
		t.Errorf("outcome = %v, want OutcomeNotFound", result.Outcome)
	}
}

func TestFetchOtherStatusFailsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server, &fakeTokens{})
	_, err := client.Fetch(context.Background(), entity.WindowRequest{BeginEpoch: 1, EndEpoch: 2})

	var provErr *entity.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Fetch = %v, want ProviderError", err)
	}
	if provErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", provErr.Status)
	}
}
