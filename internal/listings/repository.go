package listings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]Listing, int64, error)
	ListOpenByEvent(ctx context.Context, eventID uuid.UUID) ([]Listing, error)

	// TransitionStatus moves a listing between states with a guard on
	// the current state. Returns false when the guard did not match.
	TransitionStatus(ctx context.Context, listingID uuid.UUID, from []ListingStatus, to ListingStatus) (bool, error)

	// ActivateDue publishes every DRAFT listing whose go-live time has
	// passed and returns how many went live.
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repository) ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]Listing, int64, error) {
	var listings []Listing
	var total int64

	query := r.db.WithContext(ctx).Model(&Listing{}).Where("seller_id = ?", sellerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *repository) ListOpenByEvent(ctx context.Context, eventID uuid.UUID) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, StatusActive).
		Order("asking_price ASC").
		Find(&listings).Error
	return listings, err
}

func (r *repository) TransitionStatus(ctx context.Context, listingID uuid.UUID, from []ListingStatus, to ListingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("id = ? AND status IN ?", listingID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("status = ? AND go_live_at IS NOT NULL AND go_live_at <= ?", StatusDraft, now).
		Updates(map[string]interface{}{
			"status":     StatusActive,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
