package listings

import (
	"time"

	"github.com/google/uuid"
)

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID              uuid.UUID  `json:"id"`
	SellerID        uuid.UUID  `json:"seller_id"`
	EventID         uuid.UUID  `json:"event_id"`
	Section         string     `json:"section"`
	Row             string     `json:"row,omitempty"`
	Seats           []string   `json:"seats"`
	Quantity        int        `json:"quantity"`
	AskingPrice     float64    `json:"asking_price"`
	DeliveryMethod  string     `json:"delivery_method"`
	DeliveryDetails string     `json:"delivery_details,omitempty"`
	Status          string     `json:"status"`
	GoLiveAt        *time.Time `json:"go_live_at,omitempty"`
	MatchedOfferID  *uuid.UUID `json:"matched_offer_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToListingResponse converts a Listing model to its API representation
func ToListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		SellerID:        l.SellerID,
		EventID:         l.EventID,
		Section:         l.Section,
		Row:             l.Row,
		Seats:           l.Seats,
		Quantity:        l.Quantity,
		AskingPrice:     l.AskingPrice,
		DeliveryMethod:  string(l.DeliveryMethod),
		DeliveryDetails: l.DeliveryDetails,
		Status:          l.Status.String(),
		GoLiveAt:        l.GoLiveAt,
		MatchedOfferID:  l.MatchedOfferID,
		CreatedAt:       l.CreatedAt,
	}
}

// BulkItemResult is the per-item outcome of a bulk intake request.
// Accepted items carry the created listing; rejected items carry the
// reason and leave the rest of the batch untouched.
type BulkItemResult struct {
	Index    int              `json:"index"`
	Accepted bool             `json:"accepted"`
	Listing  *ListingResponse `json:"listing,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// BulkCreateResponse summarizes a bulk intake request
type BulkCreateResponse struct {
	Results  []BulkItemResult `json:"results"`
	Accepted int              `json:"accepted"`
	Rejected int              `json:"rejected"`
}

// ListingListResponse is a paginated page of a seller's listings
type ListingListResponse struct {
	Listings   []ListingResponse `json:"listings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
