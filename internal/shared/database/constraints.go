package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one settled transaction may ever exist per offer
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_transaction_per_offer
		ON settled_transactions (offer_id);
	`).Error
	if err != nil {
		return err
	}

	// Sweeper scans active offers by expiry
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_offers_status_expires_at
		ON buyer_offers (status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	// Instant-match scans open listings per event
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_event_status
		ON listings (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Go-live sweeper scans draft listings by go-live time
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_status_go_live_at
		ON listings (status, go_live_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
