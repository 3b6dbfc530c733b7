package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchly/internal/events"
	"matchly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventLookup resolves events during listing intake
type EventLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type Service interface {
	// BulkCreate validates and persists each item independently. A bad
	// item is rejected in place; the rest of the batch still lands.
	BulkCreate(ctx context.Context, sellerID uuid.UUID, req BulkCreateRequest) (*BulkCreateResponse, error)

	PublishListing(ctx context.Context, sellerID, listingID uuid.UUID) (*ListingResponse, error)
	RemoveListing(ctx context.Context, sellerID, listingID uuid.UUID) error
	GetListing(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error)
	ListSellerListings(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*ListingListResponse, error)
	ListOpenListings(ctx context.Context, eventID uuid.UUID) ([]ListingResponse, error)
}

type service struct {
	repo   Repository
	events EventLookup
	logger *logger.Logger
}

func NewService(repo Repository, eventLookup EventLookup, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		events: eventLookup,
		logger: log,
	}
}

func (s *service) BulkCreate(ctx context.Context, sellerID uuid.UUID, req BulkCreateRequest) (*BulkCreateResponse, error) {
	results := make([]BulkItemResult, len(req.Listings))
	accepted, rejected := 0, 0

	// Events repeat across items in a batch, so lookups are memoized
	eventCache := make(map[uuid.UUID]*events.Event)

	for i, item := range req.Listings {
		listing, err := s.createOne(ctx, sellerID, item, eventCache)
		if err != nil {
			results[i] = BulkItemResult{Index: i, Accepted: false, Error: err.Error()}
			rejected++
			continue
		}

		resp := ToListingResponse(listing)
		results[i] = BulkItemResult{Index: i, Accepted: true, Listing: &resp}
		accepted++
	}

	s.logger.InfoWithContext(ctx, "Bulk listing intake", map[string]interface{}{
		"seller_id": sellerID.String(),
		"accepted":  accepted,
		"rejected":  rejected,
	})

	return &BulkCreateResponse{
		Results:  results,
		Accepted: accepted,
		Rejected: rejected,
	}, nil
}

func (s *service) createOne(ctx context.Context, sellerID uuid.UUID, item ListingItem, eventCache map[uuid.UUID]*events.Event) (*Listing, error) {
	eventID, err := uuid.Parse(item.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %v", err)
	}

	delivery := DeliveryMethod(item.DeliveryMethod)
	if !delivery.IsValid() {
		return nil, fmt.Errorf("invalid delivery method %q", item.DeliveryMethod)
	}

	event, ok := eventCache[eventID]
	if !ok {
		event, err = s.events.Lookup(ctx, eventID)
		if err != nil {
			return nil, err
		}
		eventCache[eventID] = event
	}
	if !event.Status.AcceptsOffers() {
		return nil, fmt.Errorf("event %s is not upcoming", eventID)
	}

	// A future go-live time holds the listing in DRAFT; the go-live
	// sweeper publishes it once the time passes.
	status := StatusActive
	if item.GoLiveAt != nil && item.GoLiveAt.After(time.Now()) {
		status = StatusDraft
	}

	listing := &Listing{
		ID:              uuid.New(),
		SellerID:        sellerID,
		EventID:         eventID,
		Section:         item.Section,
		Row:             item.Row,
		Seats:           item.Seats,
		Quantity:        len(item.Seats),
		AskingPrice:     item.AskingPrice,
		DeliveryMethod:  delivery,
		DeliveryDetails: item.DeliveryDetails,
		Status:          status,
		GoLiveAt:        item.GoLiveAt,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %v", err)
	}
	return listing, nil
}

func (s *service) PublishListing(ctx context.Context, sellerID, listingID uuid.UUID) (*ListingResponse, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, ErrNotListingOwner
	}

	ok, err := s.repo.TransitionStatus(ctx, listingID, []ListingStatus{StatusDraft}, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to publish listing: %w", err)
	}
	if !ok {
		return nil, ErrListingNotDraft
	}

	listing.Status = StatusActive
	resp := ToListingResponse(listing)
	return &resp, nil
}

func (s *service) RemoveListing(ctx context.Context, sellerID, listingID uuid.UUID) error {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return ErrNotListingOwner
	}

	ok, err := s.repo.TransitionStatus(ctx, listingID, []ListingStatus{StatusDraft, StatusActive}, StatusRemoved)
	if err != nil {
		return fmt.Errorf("failed to remove listing: %w", err)
	}
	if !ok {
		return ErrListingNotOpen
	}
	return nil
}

func (s *service) GetListing(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	resp := ToListingResponse(listing)
	return &resp, nil
}

func (s *service) ListSellerListings(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*ListingListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	items, total, err := s.repo.ListBySeller(ctx, sellerID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	responses := make([]ListingResponse, len(items))
	for i := range items {
		responses[i] = ToListingResponse(&items[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ListingListResponse{
		Listings:   responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ListOpenListings(ctx context.Context, eventID uuid.UUID) ([]ListingResponse, error) {
	items, err := s.repo.ListOpenByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open listings: %w", err)
	}

	responses := make([]ListingResponse, len(items))
	for i := range items {
		responses[i] = ToListingResponse(&items[i])
	}
	return responses, nil
}

func (s *service) getListing(ctx context.Context, listingID uuid.UUID) (*Listing, error) {
	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}
