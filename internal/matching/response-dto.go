package matching

import (
	"time"

	"matchly/internal/listings"

	"github.com/google/uuid"
)

// TransactionResponse represents a settled transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID `json:"id"`
	BuyerID       uuid.UUID `json:"buyer_id"`
	SellerID      uuid.UUID `json:"seller_id"`
	OfferID       uuid.UUID `json:"offer_id"`
	FulfillmentID uuid.UUID `json:"fulfillment_id"`
	EventID       uuid.UUID `json:"event_id"`
	Section       string    `json:"section"`
	Row           string    `json:"row,omitempty"`
	Seats         []string  `json:"seats"`
	Quantity      int       `json:"quantity"`
	SalePrice     float64   `json:"sale_price"`
	BuyerPaid     float64   `json:"buyer_paid"`
	SellerFee     float64   `json:"seller_fee"`
	SellerPayout  float64   `json:"seller_payout"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToTransactionResponse converts a SettledTransaction to its API representation
func ToTransactionResponse(t *SettledTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		BuyerID:       t.BuyerID,
		SellerID:      t.SellerID,
		OfferID:       t.OfferID,
		FulfillmentID: t.FulfillmentID,
		EventID:       t.EventID,
		Section:       t.Section,
		Row:           t.Row,
		Seats:         t.Seats,
		Quantity:      t.Quantity,
		SalePrice:     t.SalePrice,
		BuyerPaid:     t.BuyerPaid,
		SellerFee:     t.SellerFee,
		SellerPayout:  t.SellerPayout,
		CreatedAt:     t.CreatedAt,
	}
}

// SettlementResponse is the outcome of a successful acceptance. The
// hold state distinguishes a clean capture from one escalated to
// reconciliation; the settlement itself is committed either way.
type SettlementResponse struct {
	Transaction TransactionResponse      `json:"transaction"`
	Fulfillment listings.ListingResponse `json:"fulfillment"`
	OfferStatus string                   `json:"offer_status"`
	HoldState   string                   `json:"hold_state"`
}

// TransactionListResponse is a paginated page of a seller's settlements
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
}
