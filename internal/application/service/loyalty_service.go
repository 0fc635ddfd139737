package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// LoyaltyService exposes the points balance and ledger history
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{loyaltyRepo: loyaltyRepo}
}

// Balance returns the user's loyalty account, creating it on first read
func (s *LoyaltyService) Balance(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error) {
	return s.loyaltyRepo.GetOrCreateAccount(ctx, userID)
}

// History returns the user's ledger transactions, newest first
func (s *LoyaltyService) History(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.LedgerTransaction], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	txs, total, err := s.loyaltyRepo.ListTransactions(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(txs, p), nil
}
