package matching

import (
	"time"

	"github.com/google/uuid"
)

// SettledTransaction is the financial record of one match. Exactly one
// exists per matched offer, enforced by a unique index on offer_id.
// Records are written once and never mutated.
type SettledTransaction struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	BuyerID       uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	SellerID      uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`
	OfferID       uuid.UUID `json:"offer_id" gorm:"type:uuid;not null;uniqueIndex:unique_transaction_per_offer"`
	FulfillmentID uuid.UUID `json:"fulfillment_id" gorm:"type:uuid;not null"`
	EventID       uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`

	Section  string   `json:"section" gorm:"not null"`
	Row      string   `json:"row"`
	Seats    []string `json:"seats" gorm:"serializer:json;not null"`
	Quantity int      `json:"quantity" gorm:"not null"`

	// SalePrice is per unit; BuyerPaid covers the full quantity.
	SalePrice    float64 `json:"sale_price" gorm:"not null"`
	BuyerPaid    float64 `json:"buyer_paid" gorm:"not null"`
	SellerFee    float64 `json:"seller_fee" gorm:"not null"`
	SellerPayout float64 `json:"seller_payout" gorm:"not null"`

	// The payment authorization captured for this settlement
	AuthorizationID string `json:"authorization_id" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (SettledTransaction) TableName() string {
	return "settled_transactions"
}
