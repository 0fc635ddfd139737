package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/pkg/apperror"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// OrderService handles order queries
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetOrder returns one order with its items. Callers only see their own
// orders; ownership is checked against the requesting user.
func (s *OrderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Commande")
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// ListOrders returns the user's order history, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params == nil {
		params = &repository.OrderFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}
