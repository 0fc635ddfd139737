package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/internal/domain/loyalty"
	"github.com/mbianou/chopchap-api/internal/domain/pricing"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/pkg/apperror"
	"github.com/mbianou/chopchap-api/pkg/utils"
)

// CheckoutResult is what a successful submission reports back to the caller
type CheckoutResult struct {
	OrderID              uuid.UUID `json:"order_id,omitempty"`
	Label                string    `json:"label,omitempty"`
	PaymentRef           string    `json:"payment_ref,omitempty"`
	RedirectURL          string    `json:"redirect_url,omitempty"`
	Total                int64     `json:"total"`
	DeliveryFee          int64     `json:"delivery_fee"`
	PointsUsed           int64     `json:"points_used"`
	PointsReduction      int64     `json:"points_reduction"`
	FinalTotal           int64     `json:"final_total"`
	LoyaltyPointsPending int64     `json:"loyalty_points_pending"`
}

// CheckoutService coordinates a submission end to end: validation, pricing,
// redemption, payment, persistence and the best-effort side records.
type CheckoutService struct {
	orderRepo        repository.OrderRepository
	loyaltyRepo      repository.LoyaltyRepository
	catalogRepo      repository.CatalogRepository
	notificationRepo repository.NotificationRepository
	payments         *PaymentOrchestrator
	connectivity     Connectivity
	params           loyalty.Params

	// One lock per account so two racing submissions by the same user
	// serialize instead of double-spending the points balance. Entries are
	// reference-counted and removed once the last holder releases.
	locksMu      sync.Mutex
	accountLocks map[uuid.UUID]*accountLock

	background sync.WaitGroup
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	loyaltyRepo repository.LoyaltyRepository,
	catalogRepo repository.CatalogRepository,
	notificationRepo repository.NotificationRepository,
	payments *PaymentOrchestrator,
	connectivity Connectivity,
	params loyalty.Params,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:        orderRepo,
		loyaltyRepo:      loyaltyRepo,
		catalogRepo:      catalogRepo,
		notificationRepo: notificationRepo,
		payments:         payments,
		connectivity:     connectivity,
		params:           params,
		accountLocks:     make(map[uuid.UUID]*accountLock),
	}
}

func (s *CheckoutService) lockAccount(userID uuid.UUID) *accountLock {
	s.locksMu.Lock()
	lock, ok := s.accountLocks[userID]
	if !ok {
		lock = &accountLock{}
		s.accountLocks[userID] = lock
	}
	lock.refs++
	s.locksMu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *CheckoutService) unlockAccount(userID uuid.UUID, lock *accountLock) {
	lock.mu.Unlock()

	s.locksMu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.accountLocks, userID)
	}
	s.locksMu.Unlock()
}

// Wait blocks until in-flight reconciliation writes finish. Called on
// shutdown so queued side records are not lost.
func (s *CheckoutService) Wait() {
	s.background.Wait()
}

// Submit runs one order submission. userID is nil for guest orders, in which
// case guestID identifies the device. A redirect outcome returns a result
// carrying only the redirect URL; the order is persisted out-of-band once the
// gateway calls back.
func (s *CheckoutService) Submit(ctx context.Context, userID *uuid.UUID, guestID string, input *CheckoutInput) (*CheckoutResult, error) {
	isGuest := userID == nil

	if err := ValidateCheckout(input, isGuest); err != nil {
		return nil, err
	}

	if !isGuest {
		lock := s.lockAccount(*userID)
		defer s.unlockAccount(*userID, lock)
	}

	// Areas and the add-on catalog are independent read-only lookups,
	// fetched concurrently.
	var (
		areas     []entity.DeliveryArea
		groups    []entity.AddOnGroup
		areasErr  error
		groupsErr error
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		areas, areasErr = s.catalogRepo.ListDeliveryAreas(ctx)
	}()
	go func() {
		defer wg.Done()
		groups, groupsErr = s.catalogRepo.ListAddOnGroups(ctx)
	}()
	wg.Wait()
	if areasErr != nil {
		return nil, apperror.NewPersistenceError(areasErr)
	}
	if groupsErr != nil {
		return nil, apperror.NewPersistenceError(groupsErr)
	}

	catalog := pricing.NewCatalog(groups)
	subtotal := int64(math.Round(pricing.CartSubtotal(input.Lines, catalog)))
	fee := pricing.ResolveFee(input.Area, areas, input.DeliveryFeeOverride)

	method := enum.PaymentMethod(input.PaymentMethod)

	// Loyalty earning; guests never read an account so their history count
	// is always 0 and nothing is granted.
	var pointsEarned int64
	if !isGuest {
		eligibleCount, err := s.orderRepo.CountEligible(ctx, *userID, s.params.Threshold)
		if err != nil {
			return nil, apperror.NewPersistenceError(err)
		}
		pointsEarned = s.params.PointsEarned(subtotal, eligibleCount)
	}

	// Redemption, non-guest opt-in only
	var pointsUsed, reduction int64
	if !isGuest && input.UsePoints {
		account, err := s.loyaltyRepo.GetOrCreateAccount(ctx, *userID)
		if err != nil {
			return nil, apperror.NewPersistenceError(err)
		}
		pointsUsed, reduction = s.params.ResolveRedemption(true, account.PointsBalance, subtotal+fee)
	}

	payable := subtotal + fee - reduction
	if payable < 0 {
		payable = 0
	}

	// Offline gate before any gateway work; connectivity is re-checked by
	// the orchestrator itself right before the call.
	if payable > 0 && method.RequiresGateway() && !s.connectivity.Online(ctx) {
		return nil, apperror.ErrOffline
	}

	label := utils.GenerateOrderLabel()

	var paymentRef string
	if payable > 0 && method.RequiresGateway() {
		outcome, err := s.payments.Initiate(ctx, payable, "Commande "+label)
		if err != nil {
			return nil, err
		}
		if outcome.State == PaymentStateRedirectPending {
			// The gateway callback persists the order; the synchronous
			// path ends here.
			return &CheckoutResult{
				RedirectURL:          outcome.RedirectURL,
				Total:                subtotal,
				DeliveryFee:          fee,
				PointsUsed:           pointsUsed,
				PointsReduction:      reduction,
				FinalTotal:           payable,
				LoyaltyPointsPending: pointsEarned,
			}, nil
		}
		paymentRef = outcome.Reference
	}

	// The structural gate runs once more right before committing
	if err := ValidateCheckout(input, isGuest); err != nil {
		return nil, err
	}

	order := s.buildOrder(userID, guestID, input, catalog, subtotal, fee, pointsUsed, reduction, pointsEarned, label, paymentRef)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	// Side records never block the committed order's response; their
	// failures land in the operational log only. The detached context keeps
	// them running after the request ends.
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.reconcile(context.WithoutCancel(ctx), order)
	}()

	return &CheckoutResult{
		OrderID:              order.ID,
		Label:                order.Label,
		PaymentRef:           order.PaymentRef,
		Total:                order.Total,
		DeliveryFee:          order.DeliveryFee,
		PointsUsed:           order.PointsUsed,
		PointsReduction:      order.PointsReduction,
		FinalTotal:           order.FinalTotal(),
		LoyaltyPointsPending: order.LoyaltyPointsPending,
	}, nil
}

func (s *CheckoutService) buildOrder(
	userID *uuid.UUID,
	guestID string,
	input *CheckoutInput,
	catalog pricing.Catalog,
	subtotal, fee, pointsUsed, reduction, pointsEarned int64,
	label, paymentRef string,
) *entity.Order {
	method := enum.PaymentMethod(input.PaymentMethod)

	status := enum.OrderStatusEnAttente
	if paymentRef != "" && method.RequiresGateway() {
		status = enum.OrderStatusPending
	}

	// Cash settles on delivery. A gateway order with a pending reference is
	// not paid yet either; only a fully-covered gateway order (payable
	// zeroed out, no reference) counts as paid.
	isPaid := !method.IsCashOnDelivery() && paymentRef == ""

	items := make([]entity.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		items = append(items, entity.OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: int64(math.Round(line.UnitPrice.Amount())),
			Quantity:  line.Quantity,
			AddOns:    pricing.ResolveAddOns(line, catalog),
			Total:     int64(math.Round(pricing.LineTotal(line, catalog))),
		})
	}

	return &entity.Order{
		UserID:               userID,
		GuestID:              guestID,
		Label:                label,
		Status:               status,
		PaymentMethod:        method,
		PaymentRef:           paymentRef,
		IsPaid:               isPaid,
		IsGuest:              userID == nil,
		ContactName:          input.ContactName,
		ContactPhone:         input.ContactPhone,
		Area:                 input.Area,
		FullAddress:          input.FullAddress,
		Total:                subtotal,
		DeliveryFee:          fee,
		PointsUsed:           pointsUsed,
		PointsReduction:      reduction,
		LoyaltyPointsPending: pointsEarned,
		LoyaltyEligible:      pointsEarned > 0,
		Items:                items,
	}
}

// reconcile runs the post-persistence side effects. Each one is attempted
// independently; a failure goes to the operational log, never to the caller,
// because the order is already committed and is the source of truth.
func (s *CheckoutService) reconcile(ctx context.Context, order *entity.Order) {
	var wg sync.WaitGroup

	warn := func(format string, args ...interface{}) {
		log.Printf("reconcile order %s: %s", order.Label, fmt.Sprintf(format, args...))
	}

	if order.UserID != nil && order.PointsUsed > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.loyaltyRepo.DecrementPoints(ctx, *order.UserID, order.PointsUsed)
			if err != nil {
				warn("debit de %d points impossible: %v", order.PointsUsed, err)
				return
			}
			if !ok {
				warn("debit de %d points refuse: solde insuffisant", order.PointsUsed)
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := &entity.LedgerTransaction{
				UserID:    *order.UserID,
				OrderID:   order.ID,
				Points:    order.PointsUsed,
				Direction: enum.LedgerDirectionUsage,
				Message:   fmt.Sprintf("%d points utilises sur la commande %s", order.PointsUsed, order.Label),
			}
			if err := s.loyaltyRepo.CreateTransaction(ctx, tx); err != nil {
				warn("ecriture usage impossible: %v", err)
			}
		}()
	}

	if order.UserID != nil && order.LoyaltyPointsPending > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := &entity.LedgerTransaction{
				UserID:    *order.UserID,
				OrderID:   order.ID,
				Points:    order.LoyaltyPointsPending,
				Direction: enum.LedgerDirectionGrant,
				Message:   fmt.Sprintf("%d points a gagner sur la commande %s", order.LoyaltyPointsPending, order.Label),
			}
			if err := s.loyaltyRepo.CreateTransaction(ctx, tx); err != nil {
				warn("ecriture grant impossible: %v", err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		body := fmt.Sprintf("Votre commande %s a ete recue.", order.Label)
		if order.PointsUsed > 0 {
			body = fmt.Sprintf("Votre commande %s a ete recue. %d points utilises (-%d FCFA).",
				order.Label, order.PointsUsed, order.PointsReduction)
		}
		n := &entity.Notification{
			UserID:  order.UserID,
			OrderID: order.ID,
			Title:   "Commande recue",
			Body:    body,
			Data: entity.NotificationData{
				"order_id": order.ID.String(),
				"label":    order.Label,
			},
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			warn("notification impossible: %v", err)
		}
	}()

	wg.Wait()
}
