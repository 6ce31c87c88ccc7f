package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/internal/domain/repository"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/metrics"
)

// GormWarehouseRepository loads flattened records into warehouse tables.
// All batches passed to LoadAll share one transaction: sibling tables commit
// together or not at all.
type GormWarehouseRepository struct {
	db      *gorm.DB
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewGormWarehouseRepository creates a new GORM warehouse repository
func NewGormWarehouseRepository(db *gorm.DB, m *metrics.Metrics, logger logger.Logger) repository.WarehouseRepository {
	return &GormWarehouseRepository{
		db:      db,
		logger:  logger,
		metrics: m,
	}
}

// LoadAll validates every buffered record against its table schema, then
// creates tables if absent and inserts all rows under a single transaction.
// Validation happens up front so a divergent record fails the run before any
// SQL is issued.
func (r *GormWarehouseRepository) LoadAll(ctx context.Context, batches []entity.TableBatch) error {
	rowsByTable := make(map[string][][]interface{}, len(batches))
	for _, batch := range batches {
		rows := make([][]interface{}, 0, len(batch.Records))
		for _, rec := range batch.Records {
			if err := batch.Schema.Validate(rec); err != nil {
				return err
			}
			rows = append(rows, batch.Schema.Row(rec))
		}
		rowsByTable[batch.Schema.Table] = rows
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			if err := r.loadBatch(tx, batch.Schema, rowsByTable[batch.Schema.Table]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Transaction failed, rolling back", "error", err)
		if r.metrics != nil {
			r.metrics.ErrorsCount.WithLabelValues("warehouse_load").Inc()
		}
		return fmt.Errorf("warehouse load failed: %w", err)
	}
	return nil
}

func (r *GormWarehouseRepository) loadBatch(tx *gorm.DB, schema entity.TableSchema, rows [][]interface{}) error {
	if len(rows) == 0 {
		r.logger.Warn("Skipping loading, table batch is empty", "table", schema.Table)
		return nil
	}

	r.logger.Info("Creating table or checking its existence", "table", schema.Table)
	if err := tx.Exec(schema.DDL).Error; err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.Table, err)
	}

	if schema.ReplaceExisting {
		// Re-runs of the same date would collide with the primary key, so
		// the table is reloaded in place within the same transaction.
		if err := tx.Exec("DELETE FROM " + schema.Table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", schema.Table, err)
		}
		r.logger.Info("Cleared existing rows before reload", "table", schema.Table)
	}

	insertSQL, args := buildInsert(schema, rows)

	r.logger.Info("Loading rows", "table", schema.Table, "rows", len(rows))
	if err := tx.Exec(insertSQL, args...).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", schema.Table, err)
	}

	if r.metrics != nil {
		r.metrics.RowsLoaded.WithLabelValues(schema.Table).Add(float64(len(rows)))
	}
	r.logger.Info("Finished table load", "table", schema.Table, "rows", len(rows))
	return nil
}

// buildInsert renders one multi-row insert whose placeholder order follows
// the schema's column list exactly.
func buildInsert(schema entity.TableSchema, rows [][]interface{}) (string, []interface{}) {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(schema.Columns)), ", ") + ")"

	valueClauses := make([]string, len(rows))
	args := make([]interface{}, 0, len(rows)*len(schema.Columns))
	for i, row := range rows {
		valueClauses[i] = placeholder
		args = append(args, row...)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		schema.Table,
		strings.Join(schema.Columns, ", "),
		strings.Join(valueClauses, ", "))
	return sql, args
}
