package listings

import "time"

// ListingItem is one listing inside a bulk intake request
type ListingItem struct {
	EventID         string   `json:"event_id" binding:"required,uuid"`
	Section         string   `json:"section" binding:"required"`
	Row             string   `json:"row"`
	Seats           []string `json:"seats" binding:"required,min=1,dive,required"`
	AskingPrice     float64  `json:"asking_price" binding:"required,gt=0"`
	DeliveryMethod  string   `json:"delivery_method" binding:"required,delivery_method"`
	DeliveryDetails string   `json:"delivery_details"`

	// A future go-live time keeps the listing in DRAFT until it passes;
	// omitted or past means the listing goes live immediately.
	GoLiveAt *time.Time `json:"go_live_at"`
}

// BulkCreateRequest represents the request body for bulk listing intake
type BulkCreateRequest struct {
	Listings []ListingItem `json:"listings" binding:"required,min=1,max=100,dive"`
}
