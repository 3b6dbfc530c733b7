package offers

import (
	"time"

	"github.com/google/uuid"
)

// BuyerOffer is a standing bid for tickets to an event. The buyer's
// funds are held up front for max_price * quantity; the offer stays
// ACTIVE until it is matched, cancelled, or expired.
type BuyerOffer struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BuyerID uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`

	// Sections the buyer will accept seats in
	Sections []string `json:"sections" gorm:"serializer:json;not null"`
	Quantity int      `json:"quantity" gorm:"not null"`
	MaxPrice float64  `json:"max_price" gorm:"not null"`

	// Pricing engine outputs captured at creation time
	SuggestedPrice float64 `json:"suggested_price"`
	Probability    float64 `json:"probability"`

	Status OfferStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	// Payment hold
	AuthorizationID string    `json:"authorization_id" gorm:"not null"`
	HeldAmount      float64   `json:"held_amount" gorm:"not null"`
	HoldState       HoldState `json:"hold_state" gorm:"type:varchar(20);not null;default:'AUTHORIZED'"`
	AuthorizedAt    time.Time `json:"authorized_at"`

	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	MatchedAt *time.Time `json:"matched_at,omitempty"`

	// Set when the offer settles
	MatchedFulfillmentID *uuid.UUID `json:"matched_fulfillment_id,omitempty" gorm:"type:uuid"`

	ViewCount int64 `json:"view_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BuyerOffer) TableName() string {
	return "buyer_offers"
}

// TotalHold returns the amount held at authorization time
func (o *BuyerOffer) TotalHold() float64 {
	return o.MaxPrice * float64(o.Quantity)
}

// IsExpired reports whether the offer's deadline has passed
func (o *BuyerOffer) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// OfferView records a single seller view of an offer, used for demand
// analytics.
type OfferView struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OfferID  uuid.UUID  `json:"offer_id" gorm:"type:uuid;not null;index"`
	ViewerID *uuid.UUID `json:"viewer_id,omitempty" gorm:"type:uuid"`
	ViewedAt time.Time  `json:"viewed_at"`
}

func (OfferView) TableName() string {
	return "offer_views"
}
