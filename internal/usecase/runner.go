package usecase

import (
	"context"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/internal/domain/repository"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/timeutil"
)

// Runner sequences one full ingestion run: window computation, both provider
// fetch loops, and the per-provider load transactions. Everything is fetched
// into memory before any transaction opens, so a late provider error can
// never leave an earlier table half-loaded.
type Runner struct {
	movement  *MovementIngestor
	schedule  *ScheduleIngestor
	warehouse repository.WarehouseRepository
	logger    logger.Logger

	// MovementAirports filters the movement fetch per airport; empty means
	// one unfiltered whole-day request.
	MovementAirports []string
	// ScheduleAirports drives the schedule provider fetch loop.
	ScheduleAirports []string
}

// NewRunner creates a new ingestion runner
func NewRunner(
	movement *MovementIngestor,
	schedule *ScheduleIngestor,
	warehouse repository.WarehouseRepository,
	scheduleAirports []string,
	logger logger.Logger,
) *Runner {
	return &Runner{
		movement:         movement,
		schedule:         schedule,
		warehouse:        warehouse,
		ScheduleAirports: scheduleAirports,
		logger:           logger,
	}
}

// Run ingests both providers for one calendar date. The movement table loads
// under its own transaction; departures and arrivals share one transaction,
// so sibling tables are never partially visible.
func (r *Runner) Run(ctx context.Context, date string) error {
	window, err := timeutil.ComputeDayWindow(date, timeutil.DateLayout)
	if err != nil {
		return err
	}
	r.logger.Info("Day window computed",
		"date", date, "startEpoch", window.StartEpoch, "endEpoch", window.EndEpoch,
		"startISO", window.StartISO, "midISO", window.MidISO, "endISO", window.EndISO)

	movements, err := r.movement.Fetch(ctx, window, r.MovementAirports)
	if err != nil {
		return err
	}

	departures, arrivals, err := r.schedule.Fetch(ctx, window, r.ScheduleAirports)
	if err != nil {
		return err
	}

	if err := r.warehouse.LoadAll(ctx, []entity.TableBatch{
		{Schema: entity.MovementSchema, Records: movements},
	}); err != nil {
		return err
	}

	if err := r.warehouse.LoadAll(ctx, []entity.TableBatch{
		{Schema: entity.DepartureSchema, Records: departures},
		{Schema: entity.ArrivalSchema, Records: arrivals},
	}); err != nil {
		return err
	}

	r.logger.Info("Ingestion run completed", "date", date,
		"movements", len(movements), "departures", len(departures), "arrivals", len(arrivals))
	return nil
}
