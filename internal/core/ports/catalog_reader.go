package ports

import (
	"context"

	"ordertrack/internal/core/domain/model/catalog"
)

// CatalogReader gives read-only access to the catalog. Implementations may cache.
type CatalogReader interface {
	GetCatalogItems(ctx context.Context) ([]*catalog.Item, error)
}
