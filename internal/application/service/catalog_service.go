package service

import (
	"context"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
)

// CatalogService exposes the pricing reference data to clients
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// DeliveryAreas lists the known delivery zones and their fees
func (s *CatalogService) DeliveryAreas(ctx context.Context) ([]entity.DeliveryArea, error) {
	return s.catalogRepo.ListDeliveryAreas(ctx)
}

// AddOnGroups lists the add-on catalog
func (s *CatalogService) AddOnGroups(ctx context.Context) ([]entity.AddOnGroup, error) {
	return s.catalogRepo.ListAddOnGroups(ctx)
}
