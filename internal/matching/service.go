package matching

import (
	"context"
	"errors"
	"fmt"

	"matchly/internal/listings"
	"matchly/internal/notifications"
	"matchly/internal/offers"
	"matchly/internal/payments"
	"matchly/internal/shared/config"
	"matchly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Service interface {
	// AcceptOffer settles a direct acceptance: the seller supplies the
	// seat assignment in the request.
	AcceptOffer(ctx context.Context, sellerID, offerID uuid.UUID, req AcceptOfferRequest) (*SettlementResponse, error)

	// AcceptListing settles an offer against an existing ACTIVE
	// listing. Used by the instant matcher.
	AcceptListing(ctx context.Context, sellerID, offerID, listingID uuid.UUID) (*SettlementResponse, error)

	GetTransactionByOffer(ctx context.Context, offerID uuid.UUID) (*TransactionResponse, error)
	ListSellerTransactions(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*TransactionListResponse, error)
}

type service struct {
	repo     Repository
	gateway  payments.Gateway
	recorder payments.ReconciliationRecorder
	notifier notifications.Notifier
	rules    config.MarketplaceConfig
	logger   *logger.Logger
}

func NewService(repo Repository, gateway payments.Gateway, recorder payments.ReconciliationRecorder, notifier notifications.Notifier, rules config.MarketplaceConfig, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		recorder: recorder,
		notifier: notifier,
		rules:    rules,
		logger:   log,
	}
}

func (s *service) AcceptOffer(ctx context.Context, sellerID, offerID uuid.UUID, req AcceptOfferRequest) (*SettlementResponse, error) {
	delivery := listings.DeliveryMethod(req.DeliveryMethod)
	if !delivery.IsValid() {
		return nil, fmt.Errorf("invalid delivery method %q", req.DeliveryMethod)
	}

	return s.settle(ctx, SettlementParams{
		OfferID:  offerID,
		SellerID: sellerID,
		FeeRate:  s.rules.SellerFeeRate,
		Fulfillment: &FulfillmentSpec{
			Section:         req.Section,
			Row:             req.Row,
			Seats:           req.Seats,
			DeliveryMethod:  delivery,
			DeliveryDetails: req.DeliveryDetails,
		},
	})
}

func (s *service) AcceptListing(ctx context.Context, sellerID, offerID, listingID uuid.UUID) (*SettlementResponse, error) {
	return s.settle(ctx, SettlementParams{
		OfferID:   offerID,
		SellerID:  sellerID,
		ListingID: &listingID,
		FeeRate:   s.rules.SellerFeeRate,
	})
}

// settle runs the two phases: the atomic store write, then the payment
// capture. Phase two failures never undo phase one.
func (s *service) settle(ctx context.Context, params SettlementParams) (*SettlementResponse, error) {
	result, err := s.repo.Settle(ctx, params)
	if err != nil {
		return nil, err
	}

	holdState := s.capture(ctx, result)

	s.logger.LogOfferMatched(ctx, result.Offer.ID.String(), params.SellerID.String(), result.Transaction.ID.String())

	// Fire and forget: a notification failure never fails the settlement
	go s.notifyMatch(context.WithoutCancel(ctx), result)

	return &SettlementResponse{
		Transaction: ToTransactionResponse(&result.Transaction),
		Fulfillment: listings.ToListingResponse(&result.Fulfillment),
		OfferStatus: offers.StatusMatched.String(),
		HoldState:   holdState.String(),
	}, nil
}

// capture converts the hold into a transfer. The settlement is already
// committed, so a capture failure is escalated to reconciliation and
// recorded on the offer, never rolled back.
func (s *service) capture(ctx context.Context, result *SettlementResult) offers.HoldState {
	offer := &result.Offer

	captureErr := s.gateway.Capture(ctx, offer.AuthorizationID, result.Transaction.BuyerPaid)
	if captureErr == nil {
		if err := s.repo.UpdateHoldState(ctx, offer.ID, offers.HoldCaptured); err != nil {
			s.logger.ErrorWithContext(ctx, "Failed to record captured hold state", err, map[string]interface{}{
				"offer_id": offer.ID.String(),
			})
		}
		return offers.HoldCaptured
	}

	s.logger.LogCaptureFailed(ctx, offer.ID.String(), offer.AuthorizationID, captureErr)

	if err := s.repo.UpdateHoldState(ctx, offer.ID, offers.HoldCaptureFailed); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to record capture-failed hold state", err, map[string]interface{}{
			"offer_id": offer.ID.String(),
		})
	}

	record := payments.ReconciliationRecord{
		OfferID:         offer.ID.String(),
		AuthorizationID: offer.AuthorizationID,
		Amount:          result.Transaction.BuyerPaid,
		Reason:          captureErr.Error(),
	}
	if err := s.recorder.RecordCaptureFailure(ctx, record); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to enqueue reconciliation record", err, map[string]interface{}{
			"offer_id": offer.ID.String(),
		})
	}

	return offers.HoldCaptureFailed
}

func (s *service) notifyMatch(ctx context.Context, result *SettlementResult) {
	notification := notifications.MatchNotification{
		TransactionID: result.Transaction.ID,
		OfferID:       result.Offer.ID,
		BuyerID:       result.Transaction.BuyerID,
		SellerID:      result.Transaction.SellerID,
		EventID:       result.Transaction.EventID,
		Section:       result.Transaction.Section,
		Quantity:      result.Transaction.Quantity,
		SalePrice:     result.Transaction.SalePrice,
		SellerPayout:  result.Transaction.SellerPayout,
		MatchedAt:     result.Transaction.CreatedAt,
	}

	if err := s.notifier.NotifyMatch(ctx, notification); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to publish match notification", err, map[string]interface{}{
			"transaction_id": result.Transaction.ID.String(),
		})
	}
}

func (s *service) GetTransactionByOffer(ctx context.Context, offerID uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.repo.GetTransactionByOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	response := ToTransactionResponse(transaction)
	return &response, nil
}

func (s *service) ListSellerTransactions(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*TransactionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	transactions, total, err := s.repo.ListSellerTransactions(ctx, sellerID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &TransactionListResponse{
		Transactions: responses,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}, nil
}
