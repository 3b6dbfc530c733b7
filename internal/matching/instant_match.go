package matching

import (
	"context"
	"errors"

	"matchly/internal/listings"
	"matchly/internal/offers"
	"matchly/pkg/logger"

	"github.com/google/uuid"
)

// InstantMatcher scans open listings right after an offer goes live and
// settles against the cheapest compatible one. It satisfies the offer
// package's post-creation hook.
type InstantMatcher struct {
	offers   offers.Repository
	listings listings.Repository
	engine   Service
	logger   *logger.Logger
}

func NewInstantMatcher(offerRepo offers.Repository, listingRepo listings.Repository, engine Service, log *logger.Logger) *InstantMatcher {
	return &InstantMatcher{
		offers:   offerRepo,
		listings: listingRepo,
		engine:   engine,
		logger:   log,
	}
}

// TryInstantMatch is best effort: every failure is logged and
// swallowed, never surfaced to the offer creation path.
func (m *InstantMatcher) TryInstantMatch(ctx context.Context, offerID uuid.UUID) {
	offer, err := m.offers.GetByID(ctx, offerID)
	if err != nil {
		m.logger.ErrorWithContext(ctx, "Instant match: failed to load offer", err, map[string]interface{}{
			"offer_id": offerID.String(),
		})
		return
	}
	if offer.Status != offers.StatusActive {
		return
	}

	open, err := m.listings.ListOpenByEvent(ctx, offer.EventID)
	if err != nil {
		m.logger.ErrorWithContext(ctx, "Instant match: failed to load listings", err, map[string]interface{}{
			"offer_id": offerID.String(),
		})
		return
	}

	// Listings come back cheapest first, so the first compatible one is
	// the best deal for the buyer.
	for i := range open {
		candidate := &open[i]
		if !m.compatible(offer, candidate) {
			continue
		}

		_, err := m.engine.AcceptListing(ctx, candidate.SellerID, offer.ID, candidate.ID)
		if err == nil {
			m.logger.InfoWithContext(ctx, "Instant match settled", map[string]interface{}{
				"offer_id":   offer.ID.String(),
				"listing_id": candidate.ID.String(),
			})
			return
		}
		if errors.Is(err, ErrOfferNotAvailable) {
			// Someone else settled the offer while we scanned
			return
		}
		// The listing raced away or failed validation; try the next one
	}
}

func (m *InstantMatcher) compatible(offer *offers.BuyerOffer, listing *listings.Listing) bool {
	if listing.Quantity != offer.Quantity {
		return false
	}
	if listing.AskingPrice > offer.MaxPrice {
		return false
	}
	return sectionAllowed(offer.Sections, listing.Section)
}
