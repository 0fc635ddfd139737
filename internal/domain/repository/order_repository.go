package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order and its items in one transaction
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, userID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	MarkPaid(ctx context.Context, id uuid.UUID, paymentRef string) error
	// CountEligible counts prior orders of the account that met the loyalty
	// threshold and were flagged eligible. Drives the earn-rate tier.
	CountEligible(ctx context.Context, userID uuid.UUID, minTotal int64) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
