package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"matchly/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// ReconciliationRecord is pushed when a capture fails after a
// settlement has already committed. Operations drains the queue and
// retries or refunds manually.
type ReconciliationRecord struct {
	OfferID         string    `json:"offer_id"`
	AuthorizationID string    `json:"authorization_id"`
	Amount          float64   `json:"amount"`
	Reason          string    `json:"reason"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// ReconciliationRecorder escalates failed captures for manual follow-up.
type ReconciliationRecorder interface {
	RecordCaptureFailure(ctx context.Context, rec ReconciliationRecord) error
}

type redisReconciliationRecorder struct {
	client *redis.Client
}

func NewReconciliationRecorder(client *redis.Client) ReconciliationRecorder {
	return &redisReconciliationRecorder{client: client}
}

func (r *redisReconciliationRecorder) RecordCaptureFailure(ctx context.Context, rec ReconciliationRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal reconciliation record: %w", err)
	}

	if err := r.client.LPush(ctx, constants.KEY_PAYMENT_RECONCILIATION_QUEUE, payload).Err(); err != nil {
		return fmt.Errorf("enqueue reconciliation record: %w", err)
	}
	return nil
}
