package repository

import (
	"context"

	"aviation-ingest-service/internal/domain/entity"
)

// WarehouseRepository defines the interface for warehouse load operations
type WarehouseRepository interface {
	// LoadAll creates every target table if absent and inserts all buffered
	// batches under a single transaction: either every sibling table commits
	// or none does.
	LoadAll(ctx context.Context, batches []entity.TableBatch) error
}
