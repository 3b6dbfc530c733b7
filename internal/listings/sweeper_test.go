package listings

import (
	"context"
	"testing"
	"time"

	"matchly/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func draftListing(goLiveIn time.Duration) *Listing {
	goLive := time.Now().Add(goLiveIn)
	return &Listing{
		ID:             uuid.New(),
		SellerID:       uuid.New(),
		EventID:        uuid.New(),
		Section:        "GA",
		Seats:          []string{"GA-1"},
		Quantity:       1,
		AskingPrice:    50.0,
		DeliveryMethod: DeliveryMobile,
		Status:         StatusDraft,
		GoLiveAt:       &goLive,
	}
}

func TestGoLiveSweep_PublishesDueDrafts(t *testing.T) {
	store := newFakeListingStore()

	due := draftListing(-time.Minute)
	scheduled := draftListing(time.Hour)
	store.listings[due.ID] = due
	store.listings[scheduled.ID] = scheduled

	sweeper := NewGoLiveSweeper(store, time.Minute, logger.GetDefault())
	sweeper.sweep(context.Background())

	assert.Equal(t, StatusActive, store.listings[due.ID].Status)

	// Listings still ahead of their go-live time stay in DRAFT
	assert.Equal(t, StatusDraft, store.listings[scheduled.ID].Status)
}

func TestGoLiveSweeper_StartStop(t *testing.T) {
	store := newFakeListingStore()

	due := draftListing(-time.Minute)
	store.listings[due.ID] = due

	sweeper := NewGoLiveSweeper(store, 10*time.Millisecond, logger.GetDefault())
	sweeper.Start()

	assert.Eventually(t, func() bool {
		listing, err := store.GetByID(context.Background(), due.ID)
		return err == nil && listing.Status == StatusActive
	}, time.Second, 10*time.Millisecond)

	sweeper.Stop()
}
