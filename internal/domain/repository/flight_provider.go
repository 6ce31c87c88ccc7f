package repository

import (
	"context"

	"aviation-ingest-service/internal/domain/entity"
)

// MovementProvider defines the interface for the token-authenticated
// movement API. Rate limiting and token refresh stay behind this boundary;
// callers only see records, the not-found outcome, or a fatal error.
type MovementProvider interface {
	Fetch(ctx context.Context, req entity.WindowRequest) (entity.FetchResult, error)
}

// ScheduleProvider defines the interface for the key-authenticated scheduled
// flights API, queried per airport and half-window.
type ScheduleProvider interface {
	Fetch(ctx context.Context, req entity.WindowRequest) (entity.SchedulePage, error)
}
