// Package push implements the client side of the push-notification relay:
// a fire-and-forget deliver(token, title, body, data) capability.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrInvalidToken is returned when the relay reports the device token as
// invalid or unregistered. Callers purge the token from the owning account.
var ErrInvalidToken = errors.New("push token invalid or unregistered")

// Sender delivers one push notification
type Sender interface {
	Deliver(ctx context.Context, token, title, body string, data map[string]string) error
}

// Config holds the relay endpoint
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

type deliverRequest struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type deliverResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Client is the HTTP implementation of Sender
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a new push relay client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// Deliver sends one notification through the relay
func (c *Client) Deliver(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(deliverRequest{
		Token: token,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push relay unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result deliverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("push relay returned unreadable response: %w", err)
	}

	switch result.Status {
	case "ok":
		return nil
	case "invalid_token":
		return ErrInvalidToken
	default:
		if result.Error != "" {
			return fmt.Errorf("push relay error: %s", result.Error)
		}
		return fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}
}
