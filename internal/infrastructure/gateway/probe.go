package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Probe reports whether the payment gateway is reachable. The result is
// cached briefly so back-to-back checks inside one submission do not each
// pay for a round trip.
type Probe struct {
	httpClient *http.Client
	url        string
	ttl        time.Duration

	mu        sync.Mutex
	online    bool
	checkedAt time.Time
}

// NewProbe creates a connectivity probe against the gateway endpoint
func NewProbe(url string, ttl time.Duration) *Probe {
	if ttl == 0 {
		ttl = 5 * time.Second
	}
	return &Probe{
		httpClient: &http.Client{Timeout: 3 * time.Second},
		url:        url,
		ttl:        ttl,
	}
}

// Online reports current connectivity. Connectivity can change between the
// redemption gate and the gateway call, so callers re-check right before
// any network attempt.
func (p *Probe) Online(ctx context.Context) bool {
	p.mu.Lock()
	if time.Since(p.checkedAt) < p.ttl {
		online := p.online
		p.mu.Unlock()
		return online
	}
	p.mu.Unlock()

	online := p.check(ctx)

	p.mu.Lock()
	p.online = online
	p.checkedAt = time.Now()
	p.mu.Unlock()

	return online
}

func (p *Probe) check(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
