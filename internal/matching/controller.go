package matching

import (
	"errors"
	"net/http"
	"strconv"

	"matchly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// AcceptOffer handles POST /api/v1/offers/:id/accept
func (c *Controller) AcceptOffer(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	offerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid offer ID")
		return
	}

	var req AcceptOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid request: "+err.Error())
		return
	}

	settlement, err := c.service.AcceptOffer(ctx.Request.Context(), sellerID, offerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotAvailable):
			response.RespondError(ctx, http.StatusConflict, "OfferNotAvailable", "Offer is no longer available")
		case errors.Is(err, ErrSectionMismatch):
			response.RespondError(ctx, http.StatusUnprocessableEntity, "SectionMismatch", "Section does not match the offer's desired sections")
		case errors.Is(err, ErrSeatCountMismatch):
			response.RespondError(ctx, http.StatusUnprocessableEntity, "SeatCountMismatch", "Seat count does not match the offer quantity")
		case errors.Is(err, ErrSettlementWriteFailed):
			response.RespondError(ctx, http.StatusInternalServerError, "SettlementWriteFailed", "Settlement could not be committed; the offer remains active")
		default:
			response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Offer accepted successfully", settlement, nil)
}

// GetOfferTransaction handles GET /api/v1/transactions/offer/:offerId
func (c *Controller) GetOfferTransaction(ctx *gin.Context) {
	offerID, err := uuid.Parse(ctx.Param("offerId"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid offer ID")
		return
	}

	transaction, err := c.service.GetTransactionByOffer(ctx.Request.Context(), offerID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.RespondError(ctx, http.StatusNotFound, "TransactionNotFound", "No settled transaction for this offer")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to get transaction")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Transaction retrieved successfully", transaction, nil)
}

// ListMyTransactions handles GET /api/v1/transactions
func (c *Controller) ListMyTransactions(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	result, err := c.service.ListSellerTransactions(ctx.Request.Context(), sellerID, page, pageSize)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to list transactions")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Transactions retrieved successfully", result, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	idStr, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
