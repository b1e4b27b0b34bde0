// Package paygate adapts the hosted checkout flow of the payment
// provider. The engine never touches card data: it opens a session,
// redirects the payer to the provider's page, and learns the outcome
// through webhook notifications.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// CheckoutSession is what the provider hands back when a session opens.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

type CheckoutRequest struct {
	ReservationID   uuid.UUID
	ReservationCode string
	PayerID         uuid.UUID
	AmountCents     int64
	Currency        string
}

type CheckoutGateway interface {
	OpenSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type HostedCheckoutGateway struct {
	baseURL   string
	returnURL string
	client    *http.Client
}

func NewHostedCheckoutGateway(cfg config.CheckoutConfig) *HostedCheckoutGateway {
	return &HostedCheckoutGateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		returnURL: cfg.ReturnURL,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type sessionRequest struct {
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	ReturnURL   string `json:"return_url"`
}

type sessionResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

func (g *HostedCheckoutGateway) OpenSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if req.AmountCents <= 0 {
		return nil, errs.Newf("checkout amount must be positive, got %d", req.AmountCents)
	}

	body, err := json.Marshal(sessionRequest{
		Reference:   req.ReservationCode,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ReturnURL:   g.returnURL,
	})
	if err != nil {
		return nil, errs.Wrap(err, "encode checkout session request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "build checkout session request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errs.Wrap(err, "open checkout session")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("checkout provider returned status %d", resp.StatusCode)
	}

	var out sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errs.Wrap(err, "decode checkout session response")
	}
	if out.SessionID == "" || out.RedirectURL == "" {
		return nil, errs.New("checkout provider returned an incomplete session")
	}

	return &CheckoutSession{
		SessionID:   out.SessionID,
		RedirectURL: out.RedirectURL,
	}, nil
}
