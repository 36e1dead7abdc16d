// Package payments talks to the external payments gateway that charges
// subscription upgrades against a user's wallet. The provider is a black box
// reached over plain HTTP; only the narrow Debit operation is modeled.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrPaymentRejected signals the gateway declined the charge (insufficient
// funds, unknown wallet). It maps to a client error, not a server fault.
var ErrPaymentRejected = errors.New("payment rejected")

// Gateway charges wallets.
type Gateway interface {
	// Debit charges amount (in the platform's smallest currency unit) from
	// the given wallet.
	Debit(ctx context.Context, wallet string, amount int) error
}

// HTTPGateway is the production Gateway over the payments service HTTP API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given base URL.
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) Debit(ctx context.Context, wallet string, amount int) error {
	payload, err := json.Marshal(map[string]interface{}{
		"wallet": wallet,
		"amount": amount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal debit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/debit", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build debit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("payments gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrPaymentRejected
	default:
		return fmt.Errorf("payments gateway returned status %d", resp.StatusCode)
	}
}
