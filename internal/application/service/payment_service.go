package service

import (
	"context"

	"github.com/mbianou/chopchap-api/internal/infrastructure/gateway"
	"github.com/mbianou/chopchap-api/pkg/apperror"
)

// GatewayClient is what the orchestrator needs from the payment gateway
type GatewayClient interface {
	InitTransaction(ctx context.Context, amount int64, description string) (*gateway.InitResult, error)
	TransactionStatus(ctx context.Context, transactionCode string) (*gateway.StatusResult, error)
}

// Connectivity reports whether the network path to the gateway is usable.
// It is ambient state: re-checked immediately before any gateway call.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// PaymentState tracks one submission's progress through the gateway handshake
type PaymentState string

const (
	PaymentStateIdle            PaymentState = "idle"
	PaymentStateInitiating      PaymentState = "initiating"
	PaymentStateRedirectPending PaymentState = "redirect_pending"
	PaymentStateCompleted       PaymentState = "completed"
	PaymentStateFailed          PaymentState = "failed"
)

// PaymentOutcome is the terminal result of a successful handshake. Exactly
// one of RedirectURL (caller must navigate away; persistence happens through
// the gateway callback) or Reference (persist synchronously with the code as
// payment reference) is set.
type PaymentOutcome struct {
	State       PaymentState
	RedirectURL string
	Reference   string
}

// PaymentOrchestrator drives the gateway handshake for one submission
type PaymentOrchestrator struct {
	gateway      GatewayClient
	connectivity Connectivity
}

// NewPaymentOrchestrator creates a new payment orchestrator
func NewPaymentOrchestrator(gatewayClient GatewayClient, connectivity Connectivity) *PaymentOrchestrator {
	return &PaymentOrchestrator{
		gateway:      gatewayClient,
		connectivity: connectivity,
	}
}

// Initiate runs Idle -> Initiating -> {RedirectPending | Completed | Failed}.
// Callers only invoke it for gateway-based methods with a positive payable
// amount. Fails fast without a round trip when connectivity is absent.
func (o *PaymentOrchestrator) Initiate(ctx context.Context, amount int64, description string) (*PaymentOutcome, error) {
	if !o.connectivity.Online(ctx) {
		return nil, apperror.ErrOffline
	}

	result, err := o.gateway.InitTransaction(ctx, amount, description)
	if err != nil {
		return nil, err
	}

	if result.PaymentURL != "" {
		return &PaymentOutcome{
			State:       PaymentStateRedirectPending,
			RedirectURL: result.PaymentURL,
		}, nil
	}

	if result.Code != "" {
		return &PaymentOutcome{
			State:     PaymentStateCompleted,
			Reference: result.Code,
		}, nil
	}

	// Neither a redirect URL nor a transaction code: terminal failure
	return nil, apperror.NewGatewayError("La passerelle n'a renvoye ni lien de paiement ni code de transaction")
}

// PollStatus queries the gateway for a transaction's state. Exposed for the
// external reconciliation process; never called inline during submission.
func (o *PaymentOrchestrator) PollStatus(ctx context.Context, transactionCode string) (*gateway.StatusResult, error) {
	if !o.connectivity.Online(ctx) {
		return nil, apperror.ErrOffline
	}
	return o.gateway.TransactionStatus(ctx, transactionCode)
}
