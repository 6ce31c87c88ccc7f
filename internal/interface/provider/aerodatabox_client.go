package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/metrics"
)

const aeroDataBoxProviderName = "aerodatabox"

// AeroDataBoxClient fetches scheduled departures and arrivals from the
// key-authenticated provider, one airport and half-window per call. The
// provider caps query spans at twelve hours, so callers pass half-day ISO
// boundaries.
type AeroDataBoxClient struct {
	logger     logger.Logger
	metrics    *metrics.Metrics
	httpClient *http.Client
	baseURL    string
	endpoint   string
	apiKey     string
}

// schedulePayload mirrors the provider response envelope.
type schedulePayload struct {
	Departures []entity.RawRecord `json:"departures"`
	Arrivals   []entity.RawRecord `json:"arrivals"`
}

// NewAeroDataBoxClient creates a new schedule API client
func NewAeroDataBoxClient(baseURL, endpoint, apiKey string, timeout time.Duration, m *metrics.Metrics, logger logger.Logger) *AeroDataBoxClient {
	return &AeroDataBoxClient{
		logger:     logger,
		metrics:    m,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

// Fetch issues the half-window GET for one airport. 204 means the provider
// has no flights for this half-window and is not an error; every other
// non-200 answer, timeout included, aborts the run because partial data
// within a date is unsafe to load silently.
func (c *AeroDataBoxClient) Fetch(ctx context.Context, req entity.WindowRequest) (entity.SchedulePage, error) {
	fullURL := fmt.Sprintf("%s/%s/icao/%s/%s/%s",
		c.baseURL, c.endpoint, req.AirportCode,
		url.QueryEscape(req.TimeFrom), url.QueryEscape(req.TimeTo))

	params := url.Values{}
	params.Set("withLeg", "true")
	params.Set("direction", "Both")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL+"?"+params.Encode(), nil)
	if err != nil {
		return entity.SchedulePage{}, &entity.ProviderError{Provider: aeroDataBoxProviderName, Err: err}
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("x-api-market-key", c.apiKey)

	c.logger.Info("Making schedule API request", "airport", req.AirportCode, "from", req.TimeFrom, "to", req.TimeTo)
	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(aeroDataBoxProviderName).Inc()
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.metrics != nil {
		c.metrics.FetchDuration.WithLabelValues(aeroDataBoxProviderName).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return entity.SchedulePage{}, &entity.ProviderError{
			Provider: aeroDataBoxProviderName,
			Err:      fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload schedulePayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return entity.SchedulePage{}, &entity.ProviderError{
				Provider: aeroDataBoxProviderName,
				Err:      fmt.Errorf("failed to decode response: %w", err),
			}
		}
		return entity.SchedulePage{
			Outcome:    entity.OutcomeSuccess,
			Departures: payload.Departures,
			Arrivals:   payload.Arrivals,
		}, nil

	case http.StatusNoContent:
		c.logger.Info("No scheduled flights for this half-window", "airport", req.AirportCode, "from", req.TimeFrom, "to", req.TimeTo)
		return entity.SchedulePage{Outcome: entity.OutcomeEmpty}, nil

	default:
		body, _ := io.ReadAll(resp.Body)
		if c.metrics != nil {
			c.metrics.ErrorsCount.WithLabelValues("schedule_fetch").Inc()
		}
		return entity.SchedulePage{}, &entity.ProviderError{
			Provider: aeroDataBoxProviderName,
			Status:   resp.StatusCode,
			Body:     string(body),
		}
	}
}
