package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// LoyaltyRepository defines the interface for loyalty account and ledger
// operations
type LoyaltyRepository interface {
	// GetOrCreateAccount returns the account for the user, creating it with a
	// zero balance on first use
	GetOrCreateAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error)
	// DecrementPoints conditionally subtracts points from the balance. The
	// update only applies while the balance still covers the amount, so two
	// racing submissions cannot drive it negative. Returns false when the
	// guard rejected the update.
	DecrementPoints(ctx context.Context, userID uuid.UUID, points int64) (bool, error)
	CreateTransaction(ctx context.Context, tx *entity.LedgerTransaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerTransaction, int64, error)
}
