package offers

import "time"

// CreateOfferRequest represents the request body for creating a buyer offer
type CreateOfferRequest struct {
	EventID  string   `json:"event_id" binding:"required,uuid"`
	Sections []string `json:"sections" binding:"required,min=1,dive,required"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
	MaxPrice float64  `json:"max_price" binding:"required,gt=0"`

	// Optional buyer deadline; must fall before the event-derived default
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
