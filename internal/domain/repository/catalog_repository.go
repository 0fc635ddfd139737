package repository

import (
	"context"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
)

// CatalogRepository defines read-only access to the reference data used
// during pricing: delivery areas and the add-on catalog
type CatalogRepository interface {
	ListDeliveryAreas(ctx context.Context) ([]entity.DeliveryArea, error)
	ListAddOnGroups(ctx context.Context) ([]entity.AddOnGroup, error)
}
