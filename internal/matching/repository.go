package matching

import (
	"context"
	"errors"
	"time"

	"matchly/internal/listings"
	"matchly/internal/offers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FulfillmentSpec is a seller-supplied seat assignment for a direct
// acceptance, where no listing exists yet.
type FulfillmentSpec struct {
	Section         string
	Row             string
	Seats           []string
	DeliveryMethod  listings.DeliveryMethod
	DeliveryDetails string
}

// SettlementParams drives one settlement attempt. Exactly one of
// Fulfillment (direct acceptance) or ListingID (claiming an existing
// ACTIVE listing) must be set.
type SettlementParams struct {
	OfferID     uuid.UUID
	SellerID    uuid.UUID
	Fulfillment *FulfillmentSpec
	ListingID   *uuid.UUID
	FeeRate     float64
}

// SettlementResult is everything the atomic write produced
type SettlementResult struct {
	Offer       offers.BuyerOffer
	Fulfillment listings.Listing
	Transaction SettledTransaction
}

type Repository interface {
	// Settle performs the atomic settlement write: lock the offer row,
	// re-validate under the lock, then write fulfillment, transaction,
	// and offer transition in one commit. At most one call per offer
	// can ever succeed.
	Settle(ctx context.Context, params SettlementParams) (*SettlementResult, error)

	// UpdateHoldState records the capture outcome after the settlement
	// has committed.
	UpdateHoldState(ctx context.Context, offerID uuid.UUID, state offers.HoldState) error

	GetTransactionByOffer(ctx context.Context, offerID uuid.UUID) (*SettledTransaction, error)
	ListSellerTransactions(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]SettledTransaction, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Settle(ctx context.Context, params SettlementParams) (*SettlementResult, error) {
	var result SettlementResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the offer row for the duration of the settlement. The
		// first committer wins; everyone else re-reads a terminal state.
		var offer offers.BuyerOffer
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", params.OfferID).
			First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOfferNotAvailable
			}
			return err
		}
		if offer.Status != offers.StatusActive {
			return ErrOfferNotAvailable
		}

		fulfillment, err := r.resolveFulfillment(tx, &offer, params)
		if err != nil {
			return err
		}

		now := time.Now()
		salePrice := offer.MaxPrice
		fee := salePrice * params.FeeRate
		payout := salePrice - fee

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
			SellerPayout:    payout,
			AuthorizationID: offer.AuthorizationID,
			CreatedAt:       now,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		err = tx.Model(&offers.BuyerOffer{}).
			Where("id = ?", offer.ID).
			Updates(map[string]interface{}{
				"status":                 offers.StatusMatched,
				"matched_at":             now,
				"matched_fulfillment_id": fulfillment.ID,
				"updated_at":             now,
			}).Error
		if err != nil {
			return err
		}

		offer.Status = offers.StatusMatched
		offer.MatchedAt = &now
		offer.MatchedFulfillmentID = &fulfillment.ID

		result.Offer = offer
		result.Fulfillment = *fulfillment
		result.Transaction = transaction
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotAvailable),
			errors.Is(err, ErrListingNotAvailable),
			errors.Is(err, ErrSectionMismatch),
			errors.Is(err, ErrSeatCountMismatch):
			return nil, err
		default:
			// Commit failure leaves no partial records; the offer is
			// still active and a retry remains possible.
			return nil, errors.Join(ErrSettlementWriteFailed, err)
		}
	}
	return &result, nil
}

// resolveFulfillment either claims an existing ACTIVE listing under
// lock or creates a MATCHED listing from the seller's spec. Validation
// happens here so a losing input never leaves the transaction open.
func (r *repository) resolveFulfillment(tx *gorm.DB, offer *offers.BuyerOffer, params SettlementParams) (*listings.Listing, error) {
	if params.ListingID != nil {
		var listing listings.Listing
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", *params.ListingID).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrListingNotAvailable
			}
			return nil, err
		}
		if listing.Status != listings.StatusActive {
			return nil, ErrListingNotAvailable
		}
		if !sectionAllowed(offer.Sections, listing.Section) {
			return nil, ErrSectionMismatch
		}
		if listing.Quantity != offer.Quantity {
			return nil, ErrSeatCountMismatch
		}

		err = tx.Model(&listings.Listing{}).
			Where("id = ?", listing.ID).
			Updates(map[string]interface{}{
				"status":           listings.StatusMatched,
				"matched_offer_id": offer.ID,
				"updated_at":       time.Now(),
			}).Error
		if err != nil {
			return nil, err
		}

		listing.Status = listings.StatusMatched
		listing.MatchedOfferID = &offer.ID
		return &listing, nil
	}

	spec := params.Fulfillment
	if !sectionAllowed(offer.Sections, spec.Section) {
		return nil, ErrSectionMismatch
	}
	if len(spec.Seats) != offer.Quantity {
		return nil, ErrSeatCountMismatch
	}

	listing := listings.Listing{
		ID:              uuid.New(),
		SellerID:        params.SellerID,
		EventID:         offer.EventID,
		Section:         spec.Section,
		Row:             spec.Row,
		Seats:           spec.Seats,
		Quantity:        offer.Quantity,
		AskingPrice:     offer.MaxPrice,
		DeliveryMethod:  spec.DeliveryMethod,
		DeliveryDetails: spec.DeliveryDetails,
		Status:          listings.StatusMatched,
		MatchedOfferID:  &offer.ID,
	}
	if err := tx.Create(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func sectionAllowed(sections []string, section string) bool {
	for _, s := range sections {
		if s == section {
			return true
		}
	}
	return false
}

func (r *repository) UpdateHoldState(ctx context.Context, offerID uuid.UUID, state offers.HoldState) error {
	return r.db.WithContext(ctx).
		Model(&offers.BuyerOffer{}).
		Where("id = ?", offerID).
		Updates(map[string]interface{}{
			"hold_state": state,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) GetTransactionByOffer(ctx context.Context, offerID uuid.UUID) (*SettledTransaction, error) {
	var transaction SettledTransaction
	err := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *repository) ListSellerTransactions(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]SettledTransaction, int64, error) {
	var transactions []SettledTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&SettledTransaction{}).Where("seller_id = ?", sellerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
