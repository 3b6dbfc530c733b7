package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"matchly/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPGateway(config.PaymentConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Currency:       "USD",
		RequestTimeout: 2 * time.Second,
	})
}

func TestHold_Success(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/holds", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req holdRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "buyer-1", req.BuyerID)
		assert.Equal(t, 300.0, req.Amount)
		assert.Equal(t, "USD", req.Currency)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(holdResponse{
			AuthorizationID: "auth-123",
			Amount:          req.Amount,
			Currency:        req.Currency,
		})
	})

	hold, err := gateway.Hold(context.Background(), "buyer-1", 300.0)
	require.NoError(t, err)
	assert.Equal(t, "auth-123", hold.AuthorizationID)
	assert.Equal(t, 300.0, hold.Amount)
}

func TestHold_Declined(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	hold, err := gateway.Hold(context.Background(), "buyer-1", 300.0)
	assert.Nil(t, hold)
	assert.ErrorIs(t, err, ErrHoldDeclined)
}

func TestCapture_Success(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/holds/auth-123/capture", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := gateway.Capture(context.Background(), "auth-123", 250.0)
	assert.NoError(t, err)
}

func TestCapture_AlreadyCapturedIsIdempotent(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := gateway.Capture(context.Background(), "auth-123", 250.0)
	assert.NoError(t, err)
}

func TestCapture_ServerError(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := gateway.Capture(context.Background(), "auth-123", 250.0)
	assert.ErrorIs(t, err, ErrCaptureFailed)
}

func TestCancel_Success(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/holds/auth-123/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := gateway.Cancel(context.Background(), "auth-123")
	assert.NoError(t, err)
}

func TestCancel_Failed(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := gateway.Cancel(context.Background(), "auth-123")
	assert.ErrorIs(t, err, ErrCancelFailed)
}

func TestHold_RespectsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	gateway := NewHTTPGateway(config.PaymentConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Currency:       "USD",
		RequestTimeout: 50 * time.Millisecond,
	})

	_, err := gateway.Hold(context.Background(), "buyer-1", 100.0)
	assert.Error(t, err)
}
