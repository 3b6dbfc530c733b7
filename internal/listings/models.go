package listings

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the lifecycle state of a seller listing
type ListingStatus string

const (
	StatusDraft   ListingStatus = "DRAFT"
	StatusActive  ListingStatus = "ACTIVE"
	StatusMatched ListingStatus = "MATCHED"
	StatusRemoved ListingStatus = "REMOVED"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusMatched, StatusRemoved:
		return true
	default:
		return false
	}
}

func (s ListingStatus) String() string {
	return string(s)
}

// DeliveryMethod is how the seller hands over the tickets
type DeliveryMethod string

const (
	DeliveryMobile   DeliveryMethod = "MOBILE"
	DeliveryTransfer DeliveryMethod = "TRANSFER"
	DeliveryPDF      DeliveryMethod = "PDF"
)

func (d DeliveryMethod) IsValid() bool {
	switch d {
	case DeliveryMobile, DeliveryTransfer, DeliveryPDF:
		return true
	default:
		return false
	}
}

// Listing is a seller's inventory offered for sale: a concrete seat
// assignment at an asking price.
type Listing struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SellerID uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`
	EventID  uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`

	Section string   `json:"section" gorm:"not null"`
	Row     string   `json:"row"`
	Seats   []string `json:"seats" gorm:"serializer:json;not null"`

	Quantity        int            `json:"quantity" gorm:"not null"`
	AskingPrice     float64        `json:"asking_price" gorm:"not null"`
	DeliveryMethod  DeliveryMethod `json:"delivery_method" gorm:"type:varchar(20);not null"`
	DeliveryDetails string         `json:"delivery_details,omitempty"`

	Status ListingStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	// GoLiveAt holds the seller's go-live time. A listing created with a
	// future go-live starts as DRAFT and is published when the time
	// passes.
	GoLiveAt *time.Time `json:"go_live_at,omitempty"`

	// Set when the listing settles against an offer
	MatchedOfferID *uuid.UUID `json:"matched_offer_id,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}
