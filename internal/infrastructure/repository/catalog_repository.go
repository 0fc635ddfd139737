package repository

import (
	"context"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
	domainRepo "github.com/mbianou/chopchap-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListDeliveryAreas(ctx context.Context) ([]entity.DeliveryArea, error) {
	var areas []entity.DeliveryArea
	err := r.db.WithContext(ctx).Order("name ASC").Find(&areas).Error
	return areas, err
}

func (r *catalogRepository) ListAddOnGroups(ctx context.Context) ([]entity.AddOnGroup, error) {
	var groups []entity.AddOnGroup
	err := r.db.WithContext(ctx).Order("id ASC").Find(&groups).Error
	return groups, err
}
