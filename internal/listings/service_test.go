package listings

import (
	"context"
	"sync"
	"testing"
	"time"

	"matchly/internal/events"
	"matchly/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeListingStore struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: make(map[uuid.UUID]*Listing)}
}

func (s *fakeListingStore) Create(_ context.Context, listing *Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *listing
	s.listings[listing.ID] = &copied
	return nil
}

func (s *fakeListingStore) GetByID(_ context.Context, id uuid.UUID) (*Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if listing, ok := s.listings[id]; ok {
		copied := *listing
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeListingStore) ListBySeller(_ context.Context, sellerID uuid.UUID, offset, limit int) ([]Listing, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []Listing
	for _, listing := range s.listings {
		if listing.SellerID == sellerID {
			all = append(all, *listing)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeListingStore) ListOpenByEvent(_ context.Context, eventID uuid.UUID) ([]Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []Listing
	for _, listing := range s.listings {
		if listing.EventID == eventID && listing.Status == StatusActive {
			result = append(result, *listing)
		}
	}
	return result, nil
}

func (s *fakeListingStore) TransitionStatus(_ context.Context, listingID uuid.UUID, from []ListingStatus, to ListingStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[listingID]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if listing.Status == status {
			listing.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeListingStore) ActivateDue(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var published int64
	for _, listing := range s.listings {
		if listing.Status == StatusDraft && listing.GoLiveAt != nil && !listing.GoLiveAt.After(now) {
			listing.Status = StatusActive
			published++
		}
	}
	return published, nil
}

type stubEventLookup struct {
	events map[uuid.UUID]*events.Event
}

func (f *stubEventLookup) Lookup(_ context.Context, id uuid.UUID) (*events.Event, error) {
	if event, ok := f.events[id]; ok {
		return event, nil
	}
	return nil, events.ErrEventNotFound
}

func testEvent() *events.Event {
	return &events.Event{
		ID:       uuid.New(),
		Name:     "Test Event",
		Venue:    "Test Venue",
		StartsAt: time.Now().Add(72 * time.Hour),
		Status:   events.EventStatusUpcoming,
	}
}

func item(eventID uuid.UUID, section string, seats []string, price float64) ListingItem {
	return ListingItem{
		EventID:        eventID.String(),
		Section:        section,
		Seats:          seats,
		AskingPrice:    price,
		DeliveryMethod: "MOBILE",
	}
}

func TestBulkCreate_AllAccepted(t *testing.T) {
	event := testEvent()
	store := newFakeListingStore()
	service := NewService(store, &stubEventLookup{events: map[uuid.UUID]*events.Event{event.ID: event}}, logger.GetDefault())

	sellerID := uuid.New()
	result, err := service.BulkCreate(context.Background(), sellerID, BulkCreateRequest{
		Listings: []ListingItem{
			item(event.ID, "GA", []string{"GA-1", "GA-2"}, 80.0),
			item(event.ID, "Balcony", []string{"B-5"}, 60.0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 0, result.Rejected)
	assert.Len(t, store.listings, 2)

	first := result.Results[0]
	require.True(t, first.Accepted)
	assert.Equal(t, 2, first.Listing.Quantity, "quantity derived from seat count")
	assert.Equal(t, "ACTIVE", first.Listing.Status)
}

func TestBulkCreate_PartialSuccess(t *testing.T) {
	event := testEvent()
	pastEvent := testEvent()
	pastEvent.Status = events.EventStatusCompleted

	store := newFakeListingStore()
	service := NewService(store, &stubEventLookup{events: map[uuid.UUID]*events.Event{
		event.ID:     event,
		pastEvent.ID: pastEvent,
	}}, logger.GetDefault())

	result, err := service.BulkCreate(context.Background(), uuid.New(), BulkCreateRequest{
		Listings: []ListingItem{
			item(event.ID, "GA", []string{"GA-1"}, 80.0),
			item(pastEvent.ID, "GA", []string{"GA-2"}, 80.0),
			item(uuid.New(), "GA", []string{"GA-3"}, 80.0),
			{
				EventID:        event.ID.String(),
				Section:        "GA",
				Seats:          []string{"GA-4"},
				AskingPrice:    80.0,
				DeliveryMethod: "CARRIER_PIGEON",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 3, result.Rejected)
	assert.Len(t, store.listings, 1)

	// Each rejection is reported in place with its own reason
	assert.True(t, result.Results[0].Accepted)
	assert.False(t, result.Results[1].Accepted)
	assert.Contains(t, result.Results[1].Error, "not upcoming")
	assert.False(t, result.Results[2].Accepted)
	assert.False(t, result.Results[3].Accepted)
	assert.Contains(t, result.Results[3].Error, "delivery method")
}

func TestBulkCreate_DraftHeldBack(t *testing.T) {
	event := testEvent()
	store := newFakeListingStore()
	service := NewService(store, &stubEventLookup{events: map[uuid.UUID]*events.Event{event.ID: event}}, logger.GetDefault())

	// A future go-live time holds the listing in DRAFT; a past one
	// means there is nothing to wait for.
	futureGoLive := time.Now().Add(2 * time.Hour)
	pastGoLive := time.Now().Add(-time.Minute)

	scheduled := item(event.ID, "GA", []string{"GA-1"}, 80.0)
	scheduled.GoLiveAt = &futureGoLive
	alreadyDue := item(event.ID, "GA", []string{"GA-2"}, 80.0)
	alreadyDue.GoLiveAt = &pastGoLive
	immediate := item(event.ID, "GA", []string{"GA-3"}, 80.0)

	result, err := service.BulkCreate(context.Background(), uuid.New(), BulkCreateRequest{
		Listings: []ListingItem{scheduled, alreadyDue, immediate},
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Accepted)
	assert.Equal(t, "DRAFT", result.Results[0].Listing.Status)
	require.NotNil(t, result.Results[0].Listing.GoLiveAt)
	assert.Equal(t, "ACTIVE", result.Results[1].Listing.Status)
	assert.Equal(t, "ACTIVE", result.Results[2].Listing.Status)

	open, err := service.ListOpenListings(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Len(t, open, 2, "drafts are invisible to matching")
}

func TestPublishListing(t *testing.T) {
	event := testEvent()
	store := newFakeListingStore()
	service := NewService(store, &stubEventLookup{events: map[uuid.UUID]*events.Event{event.ID: event}}, logger.GetDefault())

	sellerID := uuid.New()
	goLive := time.Now().Add(2 * time.Hour)
	draft := item(event.ID, "GA", []string{"GA-1"}, 80.0)
	draft.GoLiveAt = &goLive
	result, err := service.BulkCreate(context.Background(), sellerID, BulkCreateRequest{Listings: []ListingItem{draft}})
	require.NoError(t, err)
	listingID := result.Results[0].Listing.ID

	published, err := service.PublishListing(context.Background(), sellerID, listingID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", published.Status)

	// Publishing twice fails: the listing already left DRAFT
	_, err = service.PublishListing(context.Background(), sellerID, listingID)
	assert.ErrorIs(t, err, ErrListingNotDraft)

	// Only the owner can publish
	_, err = service.PublishListing(context.Background(), uuid.New(), listingID)
	assert.ErrorIs(t, err, ErrNotListingOwner)
}

func TestRemoveListing(t *testing.T) {
	event := testEvent()
	store := newFakeListingStore()
	service := NewService(store, &stubEventLookup{events: map[uuid.UUID]*events.Event{event.ID: event}}, logger.GetDefault())

	sellerID := uuid.New()
	result, err := service.BulkCreate(context.Background(), sellerID, BulkCreateRequest{
		Listings: []ListingItem{item(event.ID, "GA", []string{"GA-1"}, 80.0)},
	})
	require.NoError(t, err)
	listingID := result.Results[0].Listing.ID

	require.NoError(t, service.RemoveListing(context.Background(), sellerID, listingID))
	assert.Equal(t, StatusRemoved, store.listings[listingID].Status)

	// A matched listing cannot be removed
	store.listings[listingID].Status = StatusMatched
	err = service.RemoveListing(context.Background(), sellerID, listingID)
	assert.ErrorIs(t, err, ErrListingNotOpen)
}
