package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/internal/domain/loyalty"
	"github.com/mbianou/chopchap-api/internal/domain/pricing"
	"github.com/mbianou/chopchap-api/internal/infrastructure/gateway"
	"github.com/mbianou/chopchap-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	orders        *fakeOrderRepo
	loyalty       *fakeLoyaltyRepo
	catalog       *fakeCatalogRepo
	notifications *fakeNotificationRepo
	gateway       *fakeGateway
	connectivity  *fakeConnectivity
	service       *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		orders:        &fakeOrderRepo{},
		loyalty:       newFakeLoyaltyRepo(),
		notifications: newFakeNotificationRepo(),
		gateway:       &fakeGateway{},
		connectivity:  &fakeConnectivity{online: true},
		catalog: &fakeCatalogRepo{
			areas: []entity.DeliveryArea{
				{Name: "Bastos", Fee: 1500},
				{Name: "Mvog-Ada", Fee: 1000},
			},
			groups: []entity.AddOnGroup{
				{ID: "sauces", Name: "Sauces", Options: entity.AddOnOptionList{
					{Name: "Piment", Price: 100},
					{Name: "Arachide", Price: 200},
				}},
			},
		},
	}
	orchestrator := NewPaymentOrchestrator(f.gateway, f.connectivity)
	f.service = NewCheckoutService(
		f.orders, f.loyalty, f.catalog, f.notifications,
		orchestrator, f.connectivity, loyalty.DefaultParams(),
	)
	return f
}

func validInput() *CheckoutInput {
	return &CheckoutInput{
		Lines: []pricing.CartLine{
			{ItemID: "ndole-01", Name: "Ndole complet", UnitPrice: pricing.NewPriceFromAmount(3000), Quantity: 2},
		},
		Area:          "Bastos",
		FullAddress:   "Rue 1790, derriere la pharmacie",
		PaymentMethod: "cash",
	}
}

func TestSubmit_CashOrder(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()

	result, err := f.service.Submit(context.Background(), &userID, "", validInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.OrderID)
	assert.NotEmpty(t, result.Label)
	assert.Equal(t, int64(6000), result.Total)
	assert.Equal(t, int64(1500), result.DeliveryFee)
	assert.Equal(t, int64(7500), result.FinalTotal)
	assert.Empty(t, result.PaymentRef)
	assert.Empty(t, result.RedirectURL)
	assert.Zero(t, f.gateway.calls, "cash orders never touch the gateway")

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, enum.OrderStatusEnAttente, order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsGuest)

	// First qualifying order: floor(6000 x 0.10 / 100) = 6 points pending
	assert.Equal(t, int64(6), result.LoyaltyPointsPending)
	assert.True(t, order.LoyaltyEligible)
}

func TestSubmit_EarnRateDropsWithHistory(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.eligibleCount = 2
	userID := uuid.New()

	result, err := f.service.Submit(context.Background(), &userID, "", validInput())
	require.NoError(t, err)

	// floor(6000 x 0.05 / 100) = 3
	assert.Equal(t, int64(3), result.LoyaltyPointsPending)
}

func TestSubmit_GatewayCodeOutcome(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.initResult = &gateway.InitResult{Code: "TX123"}
	userID := uuid.New()

	input := validInput()
	input.PaymentMethod = "orange_money"

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)

	assert.Equal(t, "TX123", result.PaymentRef)
	assert.Empty(t, result.RedirectURL)

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.False(t, order.IsPaid, "a pending gateway reference is not yet paid")
	assert.Equal(t, "TX123", order.PaymentRef)
}

func TestSubmit_GatewayRedirectEndsSynchronousPath(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.initResult = &gateway.InitResult{PaymentURL: "https://pay.example.cm/trx/9"}
	userID := uuid.New()

	input := validInput()
	input.PaymentMethod = "mtn_momo"

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.cm/trx/9", result.RedirectURL)
	assert.Equal(t, uuid.Nil, result.OrderID)
	assert.Empty(t, f.orders.orders, "persistence is deferred to the gateway callback")
	assert.Empty(t, f.notifications.records)
}

func TestSubmit_OfflineGatewayMethodFailsFast(t *testing.T) {
	f := newCheckoutFixture()
	f.connectivity.online = false
	userID := uuid.New()

	input := validInput()
	input.PaymentMethod = "orange_money"

	_, err := f.service.Submit(context.Background(), &userID, "", input)
	require.Error(t, err)
	assert.Equal(t, apperror.ErrOffline, apperror.GetAppError(err))
	assert.Zero(t, f.gateway.calls, "no round trip is attempted offline")
	assert.Empty(t, f.orders.orders)
}

func TestSubmit_OfflineCashOrderStillWorks(t *testing.T) {
	f := newCheckoutFixture()
	f.connectivity.online = false
	userID := uuid.New()

	result, err := f.service.Submit(context.Background(), &userID, "", validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.OrderID)
}

func TestSubmit_RedemptionZeroesGatewayPayable(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()
	// 6000 + 1500 payable needs 75 points; give the account plenty
	f.loyalty.balances[userID] = 100

	input := validInput()
	input.PaymentMethod = "orange_money"
	input.UsePoints = true

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)

	assert.Equal(t, int64(75), result.PointsUsed)
	assert.Equal(t, int64(7500), result.PointsReduction)
	assert.Equal(t, int64(0), result.FinalTotal)
	assert.Zero(t, f.gateway.calls, "a fully covered order skips the gateway")

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, enum.OrderStatusEnAttente, order.Status)
	assert.True(t, order.IsPaid, "fully covered gateway order counts as paid")

	// Balance decremented through the conditional update
	f.service.Wait()
	assert.Equal(t, int64(25), f.loyalty.balances[userID])
}

func TestSubmit_PartialRedemptionCappedByBalance(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()
	f.loyalty.balances[userID] = 50

	input := validInput()
	input.UsePoints = true

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)

	assert.Equal(t, int64(50), result.PointsUsed)
	assert.Equal(t, int64(5000), result.PointsReduction)
	assert.Equal(t, int64(2500), result.FinalTotal)
	f.service.Wait()
	assert.Equal(t, int64(0), f.loyalty.balances[userID])
}

func TestSubmit_GuestNeverTouchesLoyalty(t *testing.T) {
	f := newCheckoutFixture()

	input := validInput()
	input.UsePoints = true // ignored for guests
	input.ContactName = "Eposi"
	input.ContactPhone = "+237 699 00 00 00"

	result, err := f.service.Submit(context.Background(), nil, "guest-ab12cd34", input)
	require.NoError(t, err)

	assert.Zero(t, result.PointsUsed)
	assert.Zero(t, result.LoyaltyPointsPending)
	f.service.Wait()
	assert.Empty(t, f.loyalty.balances, "no account is created for a guest")
	assert.Empty(t, f.loyalty.transactions)

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.True(t, order.IsGuest)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "guest-ab12cd34", order.GuestID)
	assert.False(t, order.LoyaltyEligible)
}

func TestSubmit_GuestWithoutContactRejected(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.service.Submit(context.Background(), nil, "guest-ab12cd34", validInput())
	require.Error(t, err)
	assert.Equal(t, apperror.ErrInvalidOrder, apperror.GetAppError(err))
	assert.Empty(t, f.orders.orders)
}

func TestSubmit_LedgerAndNotificationWritten(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()
	f.loyalty.balances[userID] = 10

	input := validInput()
	input.UsePoints = true

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)
	f.service.Wait()

	// usage row for the redemption, grant row for the earn
	require.Len(t, f.loyalty.transactions, 2)
	directions := map[enum.LedgerDirection]int64{}
	for _, tx := range f.loyalty.transactions {
		directions[tx.Direction] = tx.Points
		assert.Equal(t, result.OrderID, tx.OrderID)
		assert.Equal(t, userID, tx.UserID)
	}
	assert.Equal(t, int64(10), directions[enum.LedgerDirectionUsage])
	assert.Equal(t, int64(6), directions[enum.LedgerDirectionGrant])

	require.Len(t, f.notifications.records, 1)
	n := f.notifications.records[0]
	assert.Equal(t, result.OrderID, n.OrderID)
	assert.Contains(t, n.Body, "10 points")
}

func TestSubmit_ReconciliationFailureIsNonFatal(t *testing.T) {
	f := newCheckoutFixture()
	f.notifications.createErr = assert.AnError
	f.loyalty.txErr = assert.AnError
	userID := uuid.New()
	f.loyalty.balances[userID] = 10

	input := validInput()
	input.UsePoints = true

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err, "side-record failures never fail the submission")
	assert.NotEqual(t, uuid.Nil, result.OrderID)
	require.Len(t, f.orders.orders, 1)

	// The failed side records stay out of the client result entirely.
	f.service.Wait()
	assert.Empty(t, f.loyalty.transactions)
	assert.Empty(t, f.notifications.records)
	assert.Equal(t, int64(0), f.loyalty.balances[userID], "the decrement itself still went through")
}

func TestSubmit_RevalidatesBeforePersisting(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.initResult = &gateway.InitResult{Code: "TX777"}
	userID := uuid.New()

	input := validInput()
	input.PaymentMethod = "orange_money"
	// Corrupt the input while the gateway call is in flight. The second
	// structural gate must catch it before anything is written.
	f.gateway.onInit = func() { input.Lines[0].ItemID = "" }

	_, err := f.service.Submit(context.Background(), &userID, "", input)
	require.Error(t, err)
	assert.Equal(t, apperror.ErrInvalidOrder, apperror.GetAppError(err))
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.notifications.records)
}

func TestSubmit_AccountLockReleased(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := f.service.Submit(context.Background(), &userID, "", validInput())
		require.NoError(t, err)
	}
	otherID := uuid.New()
	_, err := f.service.Submit(context.Background(), &otherID, "", validInput())
	require.NoError(t, err)

	f.service.Wait()
	f.service.locksMu.Lock()
	defer f.service.locksMu.Unlock()
	assert.Empty(t, f.service.accountLocks, "lock entries are dropped once the last holder releases")
}

func TestSubmit_GatewayErrorAbortsWithoutOrder(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.initErr = apperror.NewGatewayError("montant invalide")
	userID := uuid.New()

	input := validInput()
	input.PaymentMethod = "carte"

	_, err := f.service.Submit(context.Background(), &userID, "", input)
	require.Error(t, err)
	assert.Equal(t, "montant invalide", apperror.GetAppError(err).Message)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.notifications.records)
}

func TestSubmit_AddOnsPricedPerUnit(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()

	input := validInput()
	input.Lines[0].AddOns = map[string][]int{"sauces": {0, 1}}

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)

	// (3000 + 100 + 200) x 2
	assert.Equal(t, int64(6600), result.Total)

	order := f.orders.orders[0]
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(6600), order.Items[0].Total)
	require.Len(t, order.Items[0].AddOns, 2)
}

func TestSubmit_DeliveryFeeOverrideWins(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()

	input := validInput()
	input.DeliveryFeeOverride = 700

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)
	assert.Equal(t, int64(700), result.DeliveryFee)
}

func TestSubmit_UnknownAreaUsesDefaultFee(t *testing.T) {
	f := newCheckoutFixture()
	userID := uuid.New()

	input := validInput()
	input.Area = "Quartier Inconnu"

	result, err := f.service.Submit(context.Background(), &userID, "", input)
	require.NoError(t, err)
	assert.Equal(t, pricing.DefaultDeliveryFee, result.DeliveryFee)
}

func TestValidateCheckout(t *testing.T) {
	base := func() *CheckoutInput { return validInput() }

	tests := []struct {
		name    string
		mutate  func(*CheckoutInput)
		isGuest bool
		wantErr bool
	}{
		{name: "valid user order", mutate: func(i *CheckoutInput) {}},
		{name: "empty cart", mutate: func(i *CheckoutInput) { i.Lines = nil }, wantErr: true},
		{name: "blank item id", mutate: func(i *CheckoutInput) { i.Lines[0].ItemID = "  " }, wantErr: true},
		{name: "blank item name", mutate: func(i *CheckoutInput) { i.Lines[0].Name = "" }, wantErr: true},
		{name: "unparseable price", mutate: func(i *CheckoutInput) { i.Lines[0].UnitPrice = pricing.NewPrice("gratuit") }, wantErr: true},
		{name: "zero quantity", mutate: func(i *CheckoutInput) { i.Lines[0].Quantity = 0 }, wantErr: true},
		{name: "missing area", mutate: func(i *CheckoutInput) { i.Area = "" }, wantErr: true},
		{name: "missing address", mutate: func(i *CheckoutInput) { i.FullAddress = " " }, wantErr: true},
		{name: "missing payment method", mutate: func(i *CheckoutInput) { i.PaymentMethod = "" }, wantErr: true},
		{name: "guest without contact", mutate: func(i *CheckoutInput) {}, isGuest: true, wantErr: true},
		{name: "guest with contact", mutate: func(i *CheckoutInput) {
			i.ContactName = "Eposi"
			i.ContactPhone = "699000000"
		}, isGuest: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base()
			tt.mutate(input)
			err := ValidateCheckout(input, tt.isGuest)
			if tt.wantErr {
				assert.Equal(t, apperror.ErrInvalidOrder, apperror.GetAppError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
