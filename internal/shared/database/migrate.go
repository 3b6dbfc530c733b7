package database

import (
	"matchly/internal/events"
	"matchly/internal/listings"
	"matchly/internal/matching"
	"matchly/internal/offers"
	"matchly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&offers.BuyerOffer{},
		&offers.OfferView{},
		&listings.Listing{},
		&matching.SettledTransaction{},
	)
}
