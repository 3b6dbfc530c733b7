package payments

import (
	"context"
	"errors"
)

var (
	// ErrHoldDeclined means the payment provider refused to authorize
	// the hold (insufficient funds, risk decline).
	ErrHoldDeclined = errors.New("payment hold declined")

	// ErrCaptureFailed means a capture against an existing hold did not
	// succeed. Callers must not roll back committed work on this error;
	// it is recorded for reconciliation instead.
	ErrCaptureFailed = errors.New("payment capture failed")

	// ErrCancelFailed means the provider could not release a hold.
	ErrCancelFailed = errors.New("payment hold cancel failed")
)

// Hold is an authorization placed against a buyer's payment method.
type Hold struct {
	AuthorizationID string  `json:"authorization_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// Gateway talks to the external payment authorization service.
// Capture and Cancel are idempotent by authorization id: repeating a
// call for an already-captured or already-cancelled hold succeeds.
type Gateway interface {
	Hold(ctx context.Context, buyerID string, amount float64) (*Hold, error)
	Capture(ctx context.Context, authorizationID string, amount float64) error
	Cancel(ctx context.Context, authorizationID string) error
}
