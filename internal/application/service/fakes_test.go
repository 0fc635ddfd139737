package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/internal/infrastructure/gateway"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// In-memory doubles for the storage and gateway interfaces. Kept minimal on
// purpose: they only implement what the services under test exercise.

type fakeOrderRepo struct {
	mu            sync.Mutex
	orders        []*entity.Order
	eligibleCount int64
	createErr     error
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(ctx context.Context, userID uuid.UUID, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return nil
}

func (r *fakeOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentRef string) error {
	return nil
}

func (r *fakeOrderRepo) CountEligible(ctx context.Context, userID uuid.UUID, minTotal int64) (int64, error) {
	return r.eligibleCount, nil
}

type fakeLoyaltyRepo struct {
	mu           sync.Mutex
	balances     map[uuid.UUID]int64
	transactions []*entity.LedgerTransaction
	txErr        error
}

func newFakeLoyaltyRepo() *fakeLoyaltyRepo {
	return &fakeLoyaltyRepo{balances: make(map[uuid.UUID]int64)}
}

func (r *fakeLoyaltyRepo) GetOrCreateAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[userID]
	if !ok {
		r.balances[userID] = 0
	}
	return &entity.LoyaltyAccount{UserID: userID, PointsBalance: balance}, nil
}

func (r *fakeLoyaltyRepo) GetAccount(ctx context.Context, userID uuid.UUID) (*entity.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[userID]
	if !ok {
		return nil, nil
	}
	return &entity.LoyaltyAccount{UserID: userID, PointsBalance: balance}, nil
}

func (r *fakeLoyaltyRepo) DecrementPoints(ctx context.Context, userID uuid.UUID, points int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.balances[userID] < points {
		return false, nil
	}
	r.balances[userID] -= points
	return true, nil
}

func (r *fakeLoyaltyRepo) CreateTransaction(ctx context.Context, tx *entity.LedgerTransaction) error {
	if r.txErr != nil {
		return r.txErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeLoyaltyRepo) ListTransactions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.LedgerTransaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, *tx)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCatalogRepo struct {
	areas  []entity.DeliveryArea
	groups []entity.AddOnGroup
}

func (r *fakeCatalogRepo) ListDeliveryAreas(ctx context.Context) ([]entity.DeliveryArea, error) {
	return r.areas, nil
}

func (r *fakeCatalogRepo) ListAddOnGroups(ctx context.Context) ([]entity.AddOnGroup, error) {
	return r.groups, nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	records   []*entity.Notification
	createErr error
	statuses  map[uuid.UUID]enum.NotificationStatus
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{statuses: make(map[uuid.UUID]enum.NotificationStatus)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.records = append(r.records, n)
	return nil
}

func (r *fakeNotificationRepo) ClaimPending(ctx context.Context, limit int) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.records {
		if len(out) >= limit {
			break
		}
		if r.statuses[n.ID] == "" || r.statuses[n.ID] == enum.NotificationStatusPending {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.NotificationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = status
	for _, n := range r.records {
		if n.ID == id {
			n.Attempts++
		}
	}
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePushToken(ctx context.Context, userID uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.PushToken = token
	}
	return nil
}

func (r *fakeUserRepo) ClearPushToken(ctx context.Context, userID uuid.UUID) error {
	return r.UpdatePushToken(ctx, userID, "")
}

type fakeGateway struct {
	initResult *gateway.InitResult
	initErr    error
	calls      int
	onInit     func()
}

func (g *fakeGateway) InitTransaction(ctx context.Context, amount int64, description string) (*gateway.InitResult, error) {
	g.calls++
	if g.onInit != nil {
		g.onInit()
	}
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.initResult, nil
}

func (g *fakeGateway) TransactionStatus(ctx context.Context, transactionCode string) (*gateway.StatusResult, error) {
	return &gateway.StatusResult{Status: "SUCCESS", TransactionCode: transactionCode}, nil
}

type fakeConnectivity struct {
	online bool
}

func (c *fakeConnectivity) Online(ctx context.Context) bool {
	return c.online
}

type fakeSender struct {
	mu        sync.Mutex
	delivered []string
	err       error
}

func (s *fakeSender) Deliver(ctx context.Context, token, title, body string, data map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, token)
	return nil
}
