package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, offer *BuyerOffer) error
	GetByID(ctx context.Context, id uuid.UUID) (*BuyerOffer, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, status *OfferStatus, offset, limit int) ([]BuyerOffer, int64, error)
	ListActiveByEvent(ctx context.Context, eventID uuid.UUID) ([]BuyerOffer, error)

	// FindExpiredActive returns ACTIVE offers whose expires_at is in the
	// past, up to limit rows.
	FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]BuyerOffer, error)

	// TransitionIfActive moves an offer out of ACTIVE and updates its
	// hold state in one guarded statement. Returns false when the offer
	// was no longer active, which means a concurrent transition won.
	TransitionIfActive(ctx context.Context, offerID uuid.UUID, to OfferStatus, hold HoldState) (bool, error)

	RecordView(ctx context.Context, view *OfferView) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, offer *BuyerOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BuyerOffer, error) {
	var offer BuyerOffer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, status *OfferStatus, offset, limit int) ([]BuyerOffer, int64, error) {
	var offers []BuyerOffer
	var total int64

	query := r.db.WithContext(ctx).Model(&BuyerOffer{}).Where("buyer_id = ?", buyerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

func (r *repository) ListActiveByEvent(ctx context.Context, eventID uuid.UUID) ([]BuyerOffer, error) {
	var offers []BuyerOffer
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, StatusActive).
		Order("created_at ASC").
		Find(&offers).Error
	return offers, err
}

func (r *repository) FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]BuyerOffer, error) {
	var offers []BuyerOffer
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", StatusActive, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&offers).Error
	return offers, err
}

func (r *repository) TransitionIfActive(ctx context.Context, offerID uuid.UUID, to OfferStatus, hold HoldState) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&BuyerOffer{}).
		Where("id = ? AND status = ?", offerID, StatusActive).
		Updates(map[string]interface{}{
			"status":     to,
			"hold_state": hold,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) RecordView(ctx context.Context, view *OfferView) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		return tx.Model(&BuyerOffer{}).
			Where("id = ?", view.OfferID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
}
