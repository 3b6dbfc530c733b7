package offers

import (
	"context"
	"time"

	"matchly/internal/payments"
	"matchly/pkg/logger"
)

const sweepBatchSize = 100

// ExpirySweeper periodically moves ACTIVE offers past their deadline
// to EXPIRED and releases their payment holds.
type ExpirySweeper struct {
	repo     Repository
	gateway  payments.Gateway
	interval time.Duration
	logger   *logger.Logger
	done     chan struct{}
}

func NewExpirySweeper(repo Repository, gateway payments.Gateway, interval time.Duration, log *logger.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		repo:     repo,
		gateway:  gateway,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called
func (s *ExpirySweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(context.Background())
			case <-s.done:
				return
			}
		}
	}()
}

// Stop signals the sweep loop to exit
func (s *ExpirySweeper) Stop() {
	close(s.done)
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, failed := 0, 0

	offers, err := s.repo.FindExpiredActive(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Expiry sweep query failed", err, nil)
		return
	}

	for i := range offers {
		if s.expireOne(ctx, &offers[i]) {
			expired++
		} else {
			failed++
		}
	}

	if expired > 0 || failed > 0 {
		s.logger.LogExpirySweep(ctx, expired, failed)
	}
}

// expireOne releases the hold and transitions the offer. A failed hold
// release leaves the offer ACTIVE so the next sweep retries it.
func (s *ExpirySweeper) expireOne(ctx context.Context, offer *BuyerOffer) bool {
	if err := s.gateway.Cancel(ctx, offer.AuthorizationID); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to release hold for expired offer", err, map[string]interface{}{
			"offer_id":         offer.ID.String(),
			"authorization_id": offer.AuthorizationID,
		})
		return false
	}

	ok, err := s.repo.TransitionIfActive(ctx, offer.ID, StatusExpired, HoldCancelled)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to expire offer", err, map[string]interface{}{
			"offer_id": offer.ID.String(),
		})
		return false
	}
	// ok == false means a settlement or cancel raced the sweep; either
	// way the offer is no longer ours to expire.
	return ok
}
