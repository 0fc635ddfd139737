package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	domainRepo "github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/pkg/pagination"
	"gorm.io/gorm"
)

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetOrCreateAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error) {
	account := entity.LoyaltyAccount{UserID: userID}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *loyaltyRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error) {
	var account entity.LoyaltyAccount
	err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

// DecrementPoints is a conditional UPDATE guarded on the current balance.
// RowsAffected == 0 means a concurrent submission spent the points first.
func (r *loyaltyRepository) DecrementPoints(ctx context.Context, userID uuid.UUID, points int64) (bool, error) {
	if points <= 0 {
		return true, nil
	}
	result := r.db.WithContext(ctx).Model(&entity.LoyaltyAccount{}).
		Where("user_id = ? AND points_balance >= ?", userID, points).
		Update("points_balance", gorm.Expr("points_balance - ?", points))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *loyaltyRepository) CreateTransaction(ctx context.Context, tx *entity.LedgerTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerTransaction, int64, error) {
	var txs []entity.LedgerTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LedgerTransaction{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}
