// Package gateway implements the HTTP client for the external payment
// gateway's action-based JSON protocol.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mbianou/chopchap-api/pkg/apperror"
)

var (
	ErrNotConfigured = errors.New("payment gateway is not configured")
)

// Config holds the gateway endpoint and the callback URLs passed along with
// every transaction init
type Config struct {
	BaseURL    string
	SuccessURL string
	FailureURL string
	Timeout    time.Duration
}

// InitResult is the gateway's answer to an initTrx action. Exactly one of
// PaymentURL (redirect flow) or Code (deferred-confirmation flow) is
// expected to be set.
type InitResult struct {
	PaymentURL string `json:"payment_url"`
	Code       string `json:"code"`
}

// StatusResult is the gateway's answer to a getTrxStatus action
type StatusResult struct {
	Status          string `json:"status"`
	TransactionCode string `json:"transaction_code"`
}

type initRequest struct {
	Action      string `json:"action"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	SuccessURL  string `json:"successUrl"`
	FailureURL  string `json:"failureUrl"`
}

type statusRequest struct {
	Action          string `json:"action"`
	TransactionCode string `json:"transactionCode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the payment gateway
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a new gateway client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// InitTransaction starts a transaction for the given amount. The gateway
// answers with either a redirect URL or a transaction code.
func (c *Client) InitTransaction(ctx context.Context, amount int64, description string) (*InitResult, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	body := initRequest{
		Action:      "initTrx",
		Amount:      amount,
		Description: description,
		SuccessURL:  c.cfg.SuccessURL,
		FailureURL:  c.cfg.FailureURL,
	}

	var result InitResult
	if err := c.post(ctx, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TransactionStatus polls the state of a previously initiated transaction.
// Exposed for the external reconciliation process; never called during
// submission.
func (c *Client) TransactionStatus(ctx context.Context, transactionCode string) (*StatusResult, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	body := statusRequest{
		Action:          "getTrxStatus",
		TransactionCode: transactionCode,
	}

	var result StatusResult
	if err := c.post(ctx, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewGatewayError(fmt.Sprintf("Echec de la connexion a la passerelle de paiement: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return apperror.NewGatewayError(errResp.Error)
		}
		return apperror.NewGatewayError(fmt.Sprintf("La passerelle de paiement a repondu avec le statut %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewGatewayError("Reponse illisible de la passerelle de paiement")
	}
	return nil
}
