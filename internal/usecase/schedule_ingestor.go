package usecase

import (
	"context"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/internal/domain/repository"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/timeutil"
)

// ScheduleIngestor fetches scheduled departures and arrivals for one day,
// airport by airport and half-window by half-window, and flattens both
// directions onto their table schemas.
type ScheduleIngestor struct {
	provider repository.ScheduleProvider
	logger   logger.Logger
}

// NewScheduleIngestor creates a new schedule ingestor
func NewScheduleIngestor(provider repository.ScheduleProvider, logger logger.Logger) *ScheduleIngestor {
	return &ScheduleIngestor{
		provider: provider,
		logger:   logger,
	}
}

// Fetch retrieves both directions for every airport across the two half-day
// windows. An empty half-window is logged and skipped; any provider error
// aborts the whole fetch, partial data within a date is unsafe to load.
func (i *ScheduleIngestor) Fetch(ctx context.Context, window timeutil.DayWindow, airports []string) (departures, arrivals []entity.Record, err error) {
	for _, airport := range airports {
		for _, half := range window.HalfWindows() {
			page, err := i.provider.Fetch(ctx, entity.WindowRequest{
				AirportCode: airport,
				CodeType:    "icao",
				TimeFrom:    half.From,
				TimeTo:      half.To,
			})
			if err != nil {
				return nil, nil, err
			}
			if page.Outcome == entity.OutcomeEmpty {
				continue
			}

			for _, raw := range page.Departures {
				departures = append(departures, FlattenDeparture(raw, airport, window.Date))
			}
			for _, raw := range page.Arrivals {
				arrivals = append(arrivals, FlattenArrival(raw, airport, window.Date))
			}

			i.logger.Info("Retrieved schedule records",
				"airport", airport, "from", half.From, "to", half.To,
				"departures", len(page.Departures), "arrivals", len(page.Arrivals))
		}
	}

	i.logger.Info("Schedule retrieval completed", "date", window.Date,
		"departures", len(departures), "arrivals", len(arrivals))
	return departures, arrivals, nil
}
