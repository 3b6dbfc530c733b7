package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchly/internal/events"
	"matchly/internal/payments"
	"matchly/internal/pricing"
	"matchly/internal/shared/config"
	"matchly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventLookup is the slice of the events service the offer lifecycle
// needs: resolving an event and reading its status and start time.
type EventLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// InstantMatcher is invoked after an offer goes live. Implementations
// may call back into the settlement engine, so it runs outside the
// creation path.
type InstantMatcher interface {
	TryInstantMatch(ctx context.Context, offerID uuid.UUID)
}

type Service interface {
	CreateOffer(ctx context.Context, buyerID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error)
	CancelOffer(ctx context.Context, buyerID, offerID uuid.UUID) (*OfferResponse, error)
	GetOffer(ctx context.Context, offerID uuid.UUID, viewerID *uuid.UUID) (*OfferResponse, error)
	ListBuyerOffers(ctx context.Context, buyerID uuid.UUID, status *OfferStatus, page, pageSize int) (*OfferListResponse, error)

	// ListOpenOffers returns the ACTIVE offers for an event, the demand
	// side a seller browses before accepting.
	ListOpenOffers(ctx context.Context, eventID uuid.UUID) ([]OfferResponse, error)

	// SetInstantMatcher wires the post-creation match hook. Set after
	// construction because the matcher depends on this service's store.
	SetInstantMatcher(m InstantMatcher)
}

type service struct {
	repo    Repository
	events  EventLookup
	pricing pricing.Engine
	gateway payments.Gateway
	rules   config.MarketplaceConfig
	matcher InstantMatcher
	logger  *logger.Logger
}

func NewService(repo Repository, eventLookup EventLookup, pricingEngine pricing.Engine, gateway payments.Gateway, rules config.MarketplaceConfig, log *logger.Logger) Service {
	return &service{
		repo:    repo,
		events:  eventLookup,
		pricing: pricingEngine,
		gateway: gateway,
		rules:   rules,
		logger:  log,
	}
}

func (s *service) SetInstantMatcher(m InstantMatcher) {
	s.matcher = m
}

func (s *service) CreateOffer(ctx context.Context, buyerID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	event, err := s.events.Lookup(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Status.AcceptsOffers() {
		return nil, ErrEventNotUpcoming
	}

	// The deadline defaults to event start minus the buffer; a buyer may
	// only tighten it, never extend past the default.
	expiresAt := event.StartsAt.Add(-s.rules.OfferExpiryBuffer)
	if req.ExpiresAt != nil && req.ExpiresAt.Before(expiresAt) {
		if !req.ExpiresAt.After(time.Now()) {
			return nil, ErrExpiryInPast
		}
		expiresAt = *req.ExpiresAt
	}
	if !expiresAt.After(time.Now()) {
		return nil, ErrEventNotUpcoming
	}

	// Pricing guidance is advisory; a quote failure never blocks the offer
	var quote pricing.Quote
	if s.pricing != nil {
		if q, qErr := s.pricing.Quote(ctx, pricing.QuoteRequest{
			EventID:  eventID,
			Sections: req.Sections,
			MaxPrice: req.MaxPrice,
			Quantity: req.Quantity,
		}); qErr == nil {
			quote = q
		}
	}

	// Funds are held before anything is persisted: no offer exists
	// without its authorization.
	holdAmount := req.MaxPrice * float64(req.Quantity)
	hold, err := s.gateway.Hold(ctx, buyerID.String(), holdAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentHoldFailed, err)
	}

	offer := &BuyerOffer{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		EventID:         eventID,
		Sections:        req.Sections,
		Quantity:        req.Quantity,
		MaxPrice:        req.MaxPrice,
		SuggestedPrice:  quote.SuggestedPrice,
		Probability:     quote.Probability,
		Status:          StatusActive,
		AuthorizationID: hold.AuthorizationID,
		HeldAmount:      hold.Amount,
		HoldState:       HoldAuthorized,
		AuthorizedAt:    time.Now(),
		ExpiresAt:       expiresAt,
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		// Release the hold so declined persistence never strands funds
		if cancelErr := s.gateway.Cancel(ctx, hold.AuthorizationID); cancelErr != nil {
			s.logger.ErrorWithContext(ctx, "Failed to release hold after offer persist failure", cancelErr, map[string]interface{}{
				"authorization_id": hold.AuthorizationID,
			})
		}
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.LogOfferCreated(ctx, offer.ID.String(), buyerID.String(), eventID.String(), offer.HeldAmount)

	if s.matcher != nil {
		go s.matcher.TryInstantMatch(context.WithoutCancel(ctx), offer.ID)
	}

	response := ToOfferResponse(offer)
	return &response, nil
}

func (s *service) CancelOffer(ctx context.Context, buyerID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.BuyerID != buyerID {
		return nil, ErrNotOfferOwner
	}
	if offer.Status != StatusActive {
		return nil, ErrOfferNotActive
	}

	// The hold must be released before the offer leaves ACTIVE. If the
	// release fails the offer stays active and the buyer can retry.
	if err := s.gateway.Cancel(ctx, offer.AuthorizationID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHoldCancelFailed, err)
	}

	ok, err := s.repo.TransitionIfActive(ctx, offerID, StatusCancelled, HoldCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel offer: %w", err)
	}
	if !ok {
		// A concurrent settlement won between our read and the update
		return nil, ErrOfferNotActive
	}

	s.logger.LogOfferCancelled(ctx, offerID.String(), buyerID.String())

	offer.Status = StatusCancelled
	offer.HoldState = HoldCancelled
	response := ToOfferResponse(offer)
	return &response, nil
}

func (s *service) GetOffer(ctx context.Context, offerID uuid.UUID, viewerID *uuid.UUID) (*OfferResponse, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	// View tracking is best effort
	if viewerID != nil && *viewerID != offer.BuyerID {
		view := &OfferView{
			ID:       uuid.New(),
			OfferID:  offerID,
			ViewerID: viewerID,
			ViewedAt: time.Now(),
		}
		if recordErr := s.repo.RecordView(ctx, view); recordErr == nil {
			offer.ViewCount++
		}
	}

	response := ToOfferResponse(offer)
	return &response, nil
}

func (s *service) ListBuyerOffers(ctx context.Context, buyerID uuid.UUID, status *OfferStatus, page, pageSize int) (*OfferListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	offers, total, err := s.repo.ListByBuyer(ctx, buyerID, status, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &OfferListResponse{
		Offers:     responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ListOpenOffers(ctx context.Context, eventID uuid.UUID) ([]OfferResponse, error) {
	offers, err := s.repo.ListActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open offers: %w", err)
	}

	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}
	return responses, nil
}

func (s *service) getOffer(ctx context.Context, offerID uuid.UUID) (*BuyerOffer, error) {
	offer, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}
