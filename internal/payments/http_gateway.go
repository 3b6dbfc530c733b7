package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"matchly/internal/shared/config"
)

type httpGateway struct {
	baseURL  string
	apiKey   string
	currency string
	client   *http.Client
}

// NewHTTPGateway builds a Gateway backed by the payment service's REST
// API. Every call is bounded by the configured request timeout.
func NewHTTPGateway(cfg config.PaymentConfig) Gateway {
	return &httpGateway{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		currency: cfg.Currency,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

type holdRequest struct {
	BuyerID  string  `json:"buyer_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type holdResponse struct {
	AuthorizationID string  `json:"authorization_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

type captureRequest struct {
	Amount float64 `json:"amount"`
}

func (g *httpGateway) Hold(ctx context.Context, buyerID string, amount float64) (*Hold, error) {
	body := holdRequest{
		BuyerID:  buyerID,
		Amount:   amount,
		Currency: g.currency,
	}

	resp, err := g.post(ctx, "/v1/holds", body)
	if err != nil {
		return nil, fmt.Errorf("payment hold request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var hr holdResponse
		if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
			return nil, fmt.Errorf("decode hold response: %w", err)
		}
		return &Hold{
			AuthorizationID: hr.AuthorizationID,
			Amount:          hr.Amount,
			Currency:        hr.Currency,
		}, nil
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		return nil, ErrHoldDeclined
	default:
		return nil, fmt.Errorf("payment hold: unexpected status %d", resp.StatusCode)
	}
}

func (g *httpGateway) Capture(ctx context.Context, authorizationID string, amount float64) error {
	path := fmt.Sprintf("/v1/holds/%s/capture", authorizationID)

	resp, err := g.post(ctx, path, captureRequest{Amount: amount})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		// Already captured: idempotent success
		return nil
	default:
		return fmt.Errorf("%w: status %d", ErrCaptureFailed, resp.StatusCode)
	}
}

func (g *httpGateway) Cancel(ctx context.Context, authorizationID string) error {
	path := fmt.Sprintf("/v1/holds/%s/cancel", authorizationID)

	resp, err := g.post(ctx, path, struct{}{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		// Already cancelled: idempotent success
		return nil
	default:
		return fmt.Errorf("%w: status %d", ErrCancelFailed, resp.StatusCode)
	}
}

func (g *httpGateway) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	// Drain small error bodies so the connection can be reused
	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
	}
	return resp, nil
}
