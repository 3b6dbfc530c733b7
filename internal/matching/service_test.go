package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"matchly/internal/listings"
	"matchly/internal/notifications"
	"matchly/internal/offers"
	"matchly/internal/payments"
	"matchly/internal/shared/config"
	"matchly/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSettlementStore mirrors the store's first-committer-wins
// guarantee with a mutex standing in for the row lock.
type fakeSettlementStore struct {
	mu           sync.Mutex
	offers       map[uuid.UUID]*offers.BuyerOffer
	listings     map[uuid.UUID]*listings.Listing
	transactions map[uuid.UUID]*SettledTransaction
	failSettle   bool
}

func newFakeSettlementStore() *fakeSettlementStore {
	return &fakeSettlementStore{
		offers:       make(map[uuid.UUID]*offers.BuyerOffer),
		listings:     make(map[uuid.UUID]*listings.Listing),
		transactions: make(map[uuid.UUID]*SettledTransaction),
	}
}

func (s *fakeSettlementStore) Settle(_ context.Context, params SettlementParams) (*SettlementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSettle {
		return nil, errors.Join(ErrSettlementWriteFailed, errors.New("simulated commit failure"))
	}

	offer, ok := s.offers[params.OfferID]
	if !ok || offer.Status != offers.StatusActive {
		return nil, ErrOfferNotAvailable
	}

	var fulfillment listings.Listing
	if params.ListingID != nil {
		listing, ok := s.listings[*params.ListingID]
		if !ok || listing.Status != listings.StatusActive {
			return nil, ErrListingNotAvailable
		}
		if !sectionAllowed(offer.Sections, listing.Section) {
			return nil, ErrSectionMismatch
		}
		if listing.Quantity != offer.Quantity {
			return nil, ErrSeatCountMismatch
		}
		listing.Status = listings.StatusMatched
		listing.MatchedOfferID = &offer.ID
		fulfillment = *listing
	} else {
		spec := params.Fulfillment
		if !sectionAllowed(offer.Sections, spec.Section) {
			return nil, ErrSectionMismatch
		}
		if len(spec.Seats) != offer.Quantity {
			return nil, ErrSeatCountMismatch
		}
		fulfillment = listings.Listing{
			ID:             uuid.New(),
			SellerID:       params.SellerID,
			EventID:        offer.EventID,
			Section:        spec.Section,
			Row:            spec.Row,
			Seats:          spec.Seats,
			Quantity:       offer.Quantity,
			AskingPrice:    offer.MaxPrice,
			DeliveryMethod: spec.DeliveryMethod,
			Status:         listings.StatusMatched,
			MatchedOfferID: &offer.ID,
		}
		s.listings[fulfillment.ID] = &fulfillment
	}

	now := time.Now()
	salePrice := offer.MaxPrice
	fee := salePrice * params.FeeRate
	transaction := SettledTransaction{
		ID:              uuid.New(),
		BuyerID:         offer.BuyerID,
		SellerID:        params.SellerID,
		OfferID:         offer.ID,
		FulfillmentID:   fulfillment.ID,
		EventID:         offer.EventID,
		Section:         fulfillment.Section,
		Row:             fulfillment.Row,
		Seats:           fulfillment.Seats,
		Quantity:        offer.Quantity,
		SalePrice:       salePrice,
		BuyerPaid:       salePrice * float64(offer.Quantity),
		SellerFee:       fee,
		SellerPayout:    salePrice - fee,
		AuthorizationID: offer.AuthorizationID,
		CreatedAt:       now,
	}
	s.transactions[offer.ID] = &transaction

	offer.Status = offers.StatusMatched
	offer.MatchedAt = &now
	offer.MatchedFulfillmentID = &fulfillment.ID

	return &SettlementResult{
		Offer:       *offer,
		Fulfillment: fulfillment,
		Transaction: transaction,
	}, nil
}

func (s *fakeSettlementStore) UpdateHoldState(_ context.Context, offerID uuid.UUID, state offers.HoldState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offer, ok := s.offers[offerID]; ok {
		offer.HoldState = state
	}
	return nil
}

func (s *fakeSettlementStore) GetTransactionByOffer(_ context.Context, offerID uuid.UUID) (*SettledTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if transaction, ok := s.transactions[offerID]; ok {
		return transaction, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeSettlementStore) ListSellerTransactions(_ context.Context, sellerID uuid.UUID, offset, limit int) ([]SettledTransaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []SettledTransaction
	for _, transaction := range s.transactions {
		if transaction.SellerID == sellerID {
			result = append(result, *transaction)
		}
	}
	return result, int64(len(result)), nil
}

type fakeGateway struct {
	mu          sync.Mutex
	captures    map[string]int
	failCapture bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{captures: make(map[string]int)}
}

func (g *fakeGateway) Hold(_ context.Context, _ string, amount float64) (*payments.Hold, error) {
	return &payments.Hold{AuthorizationID: uuid.NewString(), Amount: amount, Currency: "USD"}, nil
}

func (g *fakeGateway) Capture(_ context.Context, authorizationID string, _ float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCapture {
		return payments.ErrCaptureFailed
	}
	g.captures[authorizationID]++
	return nil
}

func (g *fakeGateway) Cancel(context.Context, string) error {
	return nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []payments.ReconciliationRecord
}

func (r *fakeRecorder) RecordCaptureFailure(_ context.Context, rec payments.ReconciliationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func activeOffer(maxPrice float64, quantity int, sections ...string) *offers.BuyerOffer {
	return &offers.BuyerOffer{
		ID:              uuid.New(),
		BuyerID:         uuid.New(),
		EventID:         uuid.New(),
		Sections:        sections,
		Quantity:        quantity,
		MaxPrice:        maxPrice,
		Status:          offers.StatusActive,
		AuthorizationID: uuid.NewString(),
		HeldAmount:      maxPrice * float64(quantity),
		HoldState:       offers.HoldAuthorized,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}
}

func newTestService(store *fakeSettlementStore, gateway *fakeGateway, recorder *fakeRecorder) Service {
	rules := config.MarketplaceConfig{SellerFeeRate: 0.10}
	return NewService(store, gateway, recorder, notifications.NewNoopNotifier(), rules, logger.GetDefault())
}

func TestAcceptOffer_Settlement(t *testing.T) {
	store := newFakeSettlementStore()
	gateway := newFakeGateway()
	recorder := &fakeRecorder{}
	service := newTestService(store, gateway, recorder)

	offer := activeOffer(100.0, 2, "GA", "Balcony")
	store.offers[offer.ID] = offer

	sellerID := uuid.New()
	result, err := service.AcceptOffer(context.Background(), sellerID, offer.ID, AcceptOfferRequest{
		Section:        "GA",
		Seats:          []string{"GA-1", "GA-2"},
		DeliveryMethod: "MOBILE",
	})
	require.NoError(t, err)

	assert.Equal(t, "MATCHED", result.OfferStatus)
	assert.Equal(t, "CAPTURED", result.HoldState)
	assert.Equal(t, 100.0, result.Transaction.SalePrice)
	assert.Equal(t, 10.0, result.Transaction.SellerFee)
	assert.Equal(t, 90.0, result.Transaction.SellerPayout)
	assert.Equal(t, 200.0, result.Transaction.BuyerPaid)
	assert.Equal(t, 2, result.Transaction.Quantity)

	assert.Equal(t, offers.StatusMatched, store.offers[offer.ID].Status)
	assert.Equal(t, offers.HoldCaptured, store.offers[offer.ID].HoldState)
	assert.Equal(t, 1, gateway.captures[offer.AuthorizationID])
	assert.Equal(t, listings.StatusMatched, store.listings[result.Fulfillment.ID].Status)
}

func TestAcceptOffer_FeeLaw(t *testing.T) {
	prices := []float64{1.0, 33.33, 100.0, 249.99, 1000.0}

	for _, price := range prices {
		store := newFakeSettlementStore()
		service := newTestService(store, newFakeGateway(), &fakeRecorder{})

		offer := activeOffer(price, 1, "GA")
		store.offers[offer.ID] = offer

		result, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
			Section:        "GA",
			Seats:          []string{"GA-1"},
			DeliveryMethod: "MOBILE",
		})
		require.NoError(t, err)

		assert.InDelta(t, price*0.10, result.Transaction.SellerFee, 1e-9)
		assert.InDelta(t, result.Transaction.SalePrice, result.Transaction.SellerFee+result.Transaction.SellerPayout, 1e-9)
	}
}

func TestAcceptOffer_SectionMismatch(t *testing.T) {
	store := newFakeSettlementStore()
	service := newTestService(store, newFakeGateway(), &fakeRecorder{})

	offer := activeOffer(100.0, 1, "GA")
	store.offers[offer.ID] = offer

	_, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
		Section:        "VIP",
		Seats:          []string{"VIP-1"},
		DeliveryMethod: "MOBILE",
	})
	assert.ErrorIs(t, err, ErrSectionMismatch)

	// Validation failures leave the offer untouched
	assert.Equal(t, offers.StatusActive, store.offers[offer.ID].Status)
	assert.Empty(t, store.transactions)
}

func TestAcceptOffer_NotActive(t *testing.T) {
	store := newFakeSettlementStore()
	service := newTestService(store, newFakeGateway(), &fakeRecorder{})

	offer := activeOffer(100.0, 1, "GA")
	offer.Status = offers.StatusCancelled
	store.offers[offer.ID] = offer

	_, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
		Section:        "GA",
		Seats:          []string{"GA-1"},
		DeliveryMethod: "MOBILE",
	})
	assert.ErrorIs(t, err, ErrOfferNotAvailable)
}

func TestAcceptOffer_ConcurrentSellers(t *testing.T) {
	store := newFakeSettlementStore()
	gateway := newFakeGateway()
	service := newTestService(store, gateway, &fakeRecorder{})

	offer := activeOffer(150.0, 2, "GA")
	store.offers[offer.ID] = offer

	const sellers = 10
	var wg sync.WaitGroup
	results := make([]error, sellers)

	for i := 0; i < sellers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
				Section:        "GA",
				Seats:          []string{"GA-1", "GA-2"},
				DeliveryMethod: "MOBILE",
			})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	succeeded, lost := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrOfferNotAvailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one settlement must win")
	assert.Equal(t, sellers-1, lost)
	assert.Len(t, store.transactions, 1)
	assert.Equal(t, 1, gateway.captures[offer.AuthorizationID], "hold captured exactly once")
}

func TestAcceptOffer_CaptureFailureEscalates(t *testing.T) {
	store := newFakeSettlementStore()
	gateway := newFakeGateway()
	gateway.failCapture = true
	recorder := &fakeRecorder{}
	service := newTestService(store, gateway, recorder)

	offer := activeOffer(100.0, 1, "GA")
	store.offers[offer.ID] = offer

	result, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
		Section:        "GA",
		Seats:          []string{"GA-1"},
		DeliveryMethod: "MOBILE",
	})

	// The settlement is committed even though capture failed
	require.NoError(t, err)
	assert.Equal(t, "MATCHED", result.OfferStatus)
	assert.Equal(t, "CAPTURE_FAILED", result.HoldState)
	assert.Equal(t, offers.StatusMatched, store.offers[offer.ID].Status)
	assert.Equal(t, offers.HoldCaptureFailed, store.offers[offer.ID].HoldState)
	assert.Len(t, store.transactions, 1)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, offer.ID.String(), recorder.records[0].OfferID)
	assert.Equal(t, offer.AuthorizationID, recorder.records[0].AuthorizationID)
	assert.Equal(t, 100.0, recorder.records[0].Amount)
}

func TestAcceptOffer_SettlementWriteFailure(t *testing.T) {
	store := newFakeSettlementStore()
	store.failSettle = true
	gateway := newFakeGateway()
	service := newTestService(store, gateway, &fakeRecorder{})

	offer := activeOffer(100.0, 1, "GA")
	store.offers[offer.ID] = offer

	_, err := service.AcceptOffer(context.Background(), uuid.New(), offer.ID, AcceptOfferRequest{
		Section:        "GA",
		Seats:          []string{"GA-1"},
		DeliveryMethod: "MOBILE",
	})
	assert.ErrorIs(t, err, ErrSettlementWriteFailed)

	// Nothing captured when the write never committed
	assert.Empty(t, gateway.captures)
}

func TestAcceptListing_ClaimsListing(t *testing.T) {
	store := newFakeSettlementStore()
	service := newTestService(store, newFakeGateway(), &fakeRecorder{})

	offer := activeOffer(100.0, 2, "GA")
	store.offers[offer.ID] = offer

	listing := &listings.Listing{
		ID:             uuid.New(),
		SellerID:       uuid.New(),
		EventID:        offer.EventID,
		Section:        "GA",
		Seats:          []string{"GA-5", "GA-6"},
		Quantity:       2,
		AskingPrice:    90.0,
		DeliveryMethod: listings.DeliveryMobile,
		Status:         listings.StatusActive,
	}
	store.listings[listing.ID] = listing

	result, err := service.AcceptListing(context.Background(), listing.SellerID, offer.ID, listing.ID)
	require.NoError(t, err)

	assert.Equal(t, listing.ID, result.Fulfillment.ID)
	assert.Equal(t, listings.StatusMatched, store.listings[listing.ID].Status)
	require.NotNil(t, store.listings[listing.ID].MatchedOfferID)
	assert.Equal(t, offer.ID, *store.listings[listing.ID].MatchedOfferID)
}

func TestAcceptListing_ListingGone(t *testing.T) {
	store := newFakeSettlementStore()
	service := newTestService(store, newFakeGateway(), &fakeRecorder{})

	offer := activeOffer(100.0, 2, "GA")
	store.offers[offer.ID] = offer

	listing := &listings.Listing{
		ID:       uuid.New(),
		Section:  "GA",
		Quantity: 2,
		Status:   listings.StatusMatched,
	}
	store.listings[listing.ID] = listing

	_, err := service.AcceptListing(context.Background(), uuid.New(), offer.ID, listing.ID)
	assert.ErrorIs(t, err, ErrListingNotAvailable)
}

func TestGetTransactionByOffer_NotFound(t *testing.T) {
	store := newFakeSettlementStore()
	service := newTestService(store, newFakeGateway(), &fakeRecorder{})

	_, err := service.GetTransactionByOffer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
