package notifications

import (
	"time"

	"github.com/google/uuid"
)

// MatchNotification is published when an offer settles. Consumers fan
// it out to buyer and seller push/email channels.
type MatchNotification struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OfferID       uuid.UUID `json:"offer_id"`
	BuyerID       uuid.UUID `json:"buyer_id"`
	SellerID      uuid.UUID `json:"seller_id"`
	EventID       uuid.UUID `json:"event_id"`
	Section       string    `json:"section"`
	Quantity      int       `json:"quantity"`
	SalePrice     float64   `json:"sale_price"`
	SellerPayout  float64   `json:"seller_payout"`
	MatchedAt     time.Time `json:"matched_at"`
}
