package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/metrics"
)

const openSkyProviderName = "opensky"

// Rate-limit headers the movement API sends back.
const (
	headerRateLimitRemaining  = "X-Rate-Limit-Remaining"
	headerRateLimitRetryAfter = "X-Rate-Limit-Retry-After-Seconds"
)

// TokenSource mints bearer tokens for the movement API.
type TokenSource interface {
	AcquireToken(ctx context.Context) (string, error)
}

// OpenSkyClient fetches windowed flight movements from the rate-limited,
// token-authenticated provider. It owns the whole retry policy: 429 backoff
// driven by the provider's retry-after header, a bounded 401 remint budget,
// and the 404-means-no-data outcome. Anything else aborts the run.
type OpenSkyClient struct {
	logger     logger.Logger
	metrics    *metrics.Metrics
	tokens     TokenSource
	httpClient *http.Client
	baseURL    string
	endpoint   string

	tokenRetryBudget   int
	defaultBackoff     time.Duration
	maxBackoffAttempts int // zero means retry 429s indefinitely

	token string
	sleep func(time.Duration) // injectable for tests
}

// NewOpenSkyClient creates a new movement API client
func NewOpenSkyClient(
	tokens TokenSource,
	baseURL string,
	endpoint string,
	timeout time.Duration,
	tokenRetryBudget int,
	defaultBackoff time.Duration,
	maxBackoffAttempts int,
	m *metrics.Metrics,
	logger logger.Logger,
) *OpenSkyClient {
	return &OpenSkyClient{
		logger:             logger,
		metrics:            m,
		tokens:             tokens,
		httpClient:         &http.Client{Timeout: timeout},
		baseURL:            baseURL,
		endpoint:           endpoint,
		tokenRetryBudget:   tokenRetryBudget,
		defaultBackoff:     defaultBackoff,
		maxBackoffAttempts: maxBackoffAttempts,
		sleep:              time.Sleep,
	}
}

// Fetch issues the windowed GET for one request, retrying through rate
// limits and expired tokens until it has a terminal answer. 404 is reported
// as OutcomeNotFound so the caller can skip just this airport/window pair.
func (c *OpenSkyClient) Fetch(ctx context.Context, req entity.WindowRequest) (entity.FetchResult, error) {
	if c.token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return entity.FetchResult{}, err
		}
	}

	refreshes := 0
	backoffs := 0

	for {
		resp, err := c.doRequest(ctx, req)
		if err != nil {
			return entity.FetchResult{}, &entity.ProviderError{Provider: openSkyProviderName, Err: err}
		}

		switch resp.StatusCode {
		case http.StatusOK:
			result, err := c.decodeRecords(resp)
			if err != nil {
				return entity.FetchResult{}, err
			}
			return result, nil

		case http.StatusNotFound:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.logger.Warn("No movement data for this window", "airport", req.AirportCode, "begin", req.BeginEpoch, "end", req.EndEpoch)
			return entity.FetchResult{Outcome: entity.OutcomeNotFound}, nil

		case http.StatusTooManyRequests:
			wait := c.retryAfter(resp)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			backoffs++
			if c.maxBackoffAttempts > 0 && backoffs > c.maxBackoffAttempts {
				return entity.FetchResult{}, &entity.ProviderError{
					Provider: openSkyProviderName,
					Status:   resp.StatusCode,
					Body:     fmt.Sprintf("still rate limited after %d backoff attempts", c.maxBackoffAttempts),
				}
			}
			c.logger.Warn("Rate limited, backing off", "wait", wait, "attempt", backoffs)
			if c.metrics != nil {
				c.metrics.RateLimitWaits.Inc()
			}
			c.sleep(wait)

		case http.StatusUnauthorized:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			refreshes++
			if refreshes >= c.tokenRetryBudget {
				return entity.FetchResult{}, fmt.Errorf("%w: failed after %d attempts", entity.ErrAuthExhausted, refreshes)
			}
			c.logger.Warn("Token might have expired, requesting a new one", "attempt", refreshes)
			if err := c.refreshToken(ctx); err != nil {
				return entity.FetchResult{}, err
			}

		default:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if c.metrics != nil {
				c.metrics.ErrorsCount.WithLabelValues("movement_fetch").Inc()
			}
			return entity.FetchResult{}, &entity.ProviderError{
				Provider: openSkyProviderName,
				Status:   resp.StatusCode,
				Body:     string(body),
			}
		}
	}
}

func (c *OpenSkyClient) refreshToken(ctx context.Context) error {
	token, err := c.tokens.AcquireToken(ctx)
	if err != nil {
		return err
	}
	c.token = token
	if c.metrics != nil {
		c.metrics.TokenRefreshes.Inc()
	}
	return nil
}

func (c *OpenSkyClient) doRequest(ctx context.Context, req entity.WindowRequest) (*http.Response, error) {
	endpoint := c.baseURL + c.endpoint

	params := url.Values{}
	params.Set("begin", strconv.FormatInt(req.BeginEpoch, 10))
	params.Set("end", strconv.FormatInt(req.EndEpoch, 10))
	if req.AirportCode != "" {
		codeType := req.CodeType
		if codeType == "" {
			codeType = entity.CodeTypeAirport
		}
		params.Set(codeType, req.AirportCode)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Info("Making movement API request", "url", endpoint, "params", params.Encode())
	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(openSkyProviderName).Inc()
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.metrics != nil {
		c.metrics.FetchDuration.WithLabelValues(openSkyProviderName).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *OpenSkyClient) decodeRecords(resp *http.Response) (entity.FetchResult, error) {
	defer resp.Body.Close()

	if remaining := resp.Header.Get(headerRateLimitRemaining); remaining != "" {
		c.logger.Info("Movement API request successful", "remainingCredits", remaining)
	} else {
		c.logger.Warn("Movement API request successful, but rate-limit-remaining header was not found")
	}

	var records []entity.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return entity.FetchResult{}, &entity.ProviderError{
			Provider: openSkyProviderName,
			Err:      fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return entity.FetchResult{Outcome: entity.OutcomeSuccess, Records: records}, nil
}

// retryAfter reads the provider's backoff hint; absent or non-numeric values
// fall back to the configured default.
func (c *OpenSkyClient) retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get(headerRateLimitRetryAfter)
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return c.defaultBackoff
	}
	return time.Duration(seconds) * time.Second
}
