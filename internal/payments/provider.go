package payments

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/config"
)

// CheckoutProvider abstracts the hosted-checkout vendor. The only contract the
// rest of the system relies on: the session carries the booking ID as
// metadata, and the vendor later delivers a signed webhook referencing it.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req bookings.CheckoutRequest) (string, error)
}

// MockCheckoutProvider builds provider-shaped checkout URLs without calling
// any vendor. Used in development and tests.
type MockCheckoutProvider struct {
	baseURL     string
	successPath string
}

func NewMockCheckoutProvider(cfg *config.Config) *MockCheckoutProvider {
	return &MockCheckoutProvider{
		baseURL:     strings.TrimSuffix(cfg.Payment.CheckoutBaseURL, "/"),
		successPath: cfg.Payment.SuccessPath,
	}
}

func (p *MockCheckoutProvider) CreateSession(ctx context.Context, req bookings.CheckoutRequest) (string, error) {
	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("checkout session requires a booking id")
	}

	sessionID := "cs_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	params := url.Values{}
	params.Set("session_id", sessionID)
	params.Set("booking_id", req.BookingID.String())
	params.Set("amount", fmt.Sprintf("%.2f", req.Amount))
	params.Set("success_url", fmt.Sprintf("%s/%s", p.baseURL, p.successPath))

	return fmt.Sprintf("%s/pay?%s", p.baseURL, params.Encode()), nil
}

// Webhook event types delivered by the provider.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// WebhookEvent is the provider's confirmation envelope. Only the event type
// and the session metadata matter to us.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			SessionID string            `json:"id"`
			Metadata  map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// BookingID extracts the correlation metadata, if present.
func (e *WebhookEvent) BookingID() (uuid.UUID, bool) {
	raw, ok := e.Data.Object.Metadata["booking_id"]
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
