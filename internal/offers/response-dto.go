package offers

import (
	"time"

	"github.com/google/uuid"
)

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID       uuid.UUID `json:"id"`
	BuyerID  uuid.UUID `json:"buyer_id"`
	EventID  uuid.UUID `json:"event_id"`
	Sections []string  `json:"sections"`
	Quantity int       `json:"quantity"`
	MaxPrice float64   `json:"max_price"`

	SuggestedPrice float64 `json:"suggested_price"`
	Probability    float64 `json:"probability"`

	Status    string     `json:"status"`
	HoldState string     `json:"hold_state"`
	ExpiresAt time.Time  `json:"expires_at"`
	MatchedAt *time.Time `json:"matched_at,omitempty"`
	ViewCount int64      `json:"view_count"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToOfferResponse converts a BuyerOffer model to its API representation
func ToOfferResponse(o *BuyerOffer) OfferResponse {
	return OfferResponse{
		ID:             o.ID,
		BuyerID:        o.BuyerID,
		EventID:        o.EventID,
		Sections:       o.Sections,
		Quantity:       o.Quantity,
		MaxPrice:       o.MaxPrice,
		SuggestedPrice: o.SuggestedPrice,
		Probability:    o.Probability,
		Status:         o.Status.String(),
		HoldState:      o.HoldState.String(),
		ExpiresAt:      o.ExpiresAt,
		MatchedAt:      o.MatchedAt,
		ViewCount:      o.ViewCount,
		CreatedAt:      o.CreatedAt,
	}
}

// OfferListResponse is a paginated page of a buyer's offers
type OfferListResponse struct {
	Offers     []OfferResponse `json:"offers"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
