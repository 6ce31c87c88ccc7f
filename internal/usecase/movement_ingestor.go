package usecase

import (
	"context"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/internal/domain/repository"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/timeutil"
)

// MovementIngestor fetches ADS-B movement records for one day and flattens
// them onto the flights schema.
type MovementIngestor struct {
	provider repository.MovementProvider
	logger   logger.Logger
}

// NewMovementIngestor creates a new movement ingestor
func NewMovementIngestor(provider repository.MovementProvider, logger logger.Logger) *MovementIngestor {
	return &MovementIngestor{
		provider: provider,
		logger:   logger,
	}
}

// Fetch retrieves all movements inside the day window. With no airports
// configured it issues a single unfiltered request; otherwise one request
// per airport, skipping pairs the provider reports as not found.
func (i *MovementIngestor) Fetch(ctx context.Context, window timeutil.DayWindow, airports []string) ([]entity.Record, error) {
	requests := i.buildRequests(window, airports)

	var records []entity.Record
	for _, req := range requests {
		result, err := i.provider.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		if result.Outcome == entity.OutcomeNotFound {
			continue
		}

		i.logger.Info("Retrieved movement records", "airport", req.AirportCode, "date", window.Date, "count", len(result.Records))
		for _, raw := range result.Records {
			records = append(records, FlattenMovement(raw, window.Date))
		}
	}

	i.logger.Info("Movement retrieval completed", "date", window.Date, "rows", len(records))
	return records, nil
}

func (i *MovementIngestor) buildRequests(window timeutil.DayWindow, airports []string) []entity.WindowRequest {
	if len(airports) == 0 {
		return []entity.WindowRequest{{
			BeginEpoch: window.StartEpoch,
			EndEpoch:   window.EndEpoch,
		}}
	}

	requests := make([]entity.WindowRequest, 0, len(airports))
	for _, airport := range airports {
		requests = append(requests, entity.WindowRequest{
			AirportCode: airport,
			CodeType:    entity.CodeTypeAirport,
			BeginEpoch:  window.StartEpoch,
			EndEpoch:    window.EndEpoch,
		})
	}
	return requests
}
