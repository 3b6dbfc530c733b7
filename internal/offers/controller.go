package offers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"matchly/internal/events"
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

// CreateOffer handles POST /api/v1/offers
func (c *Controller) CreateOffer(ctx *gin.Context) {
	buyerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req CreateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid request: "+err.Error())
		return
	}

	offer, err := c.service.CreateOffer(ctx.Request.Context(), buyerID, req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			response.RespondError(ctx, http.StatusNotFound, "EventNotFound", "Event not found")
		case errors.Is(err, ErrEventNotUpcoming):
			response.RespondError(ctx, http.StatusConflict, "EventNotUpcoming", "Event is not accepting offers")
		case errors.Is(err, ErrExpiryInPast):
			response.RespondError(ctx, http.StatusUnprocessableEntity, "ExpiryInPast", "Offer expiry must be in the future")
		case errors.Is(err, ErrPaymentHoldFailed):
			response.RespondError(ctx, http.StatusPaymentRequired, "PaymentHoldFailed", "Could not authorize payment hold")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to create offer")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Offer created successfully", offer, nil)
}

// CancelOffer handles POST /api/v1/offers/:id/cancel
func (c *Controller) CancelOffer(ctx *gin.Context) {
	buyerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	offerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid offer ID")
		return
	}

	offer, err := c.service.CancelOffer(ctx.Request.Context(), buyerID, offerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotFound):
			response.RespondError(ctx, http.StatusNotFound, "OfferNotFound", "Offer not found")
		case errors.Is(err, ErrNotOfferOwner):
			response.RespondError(ctx, http.StatusForbidden, "NotOfferOwner", "Offer belongs to another buyer")
		case errors.Is(err, ErrOfferNotActive):
			response.RespondError(ctx, http.StatusConflict, "OfferNotActive", "Offer is no longer active")
		case errors.Is(err, ErrHoldCancelFailed):
			response.RespondError(ctx, http.StatusBadGateway, "HoldCancelFailed", "Could not release payment hold; offer remains active")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to cancel offer")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Offer cancelled successfully", offer, nil)
}

// GetOffer handles GET /api/v1/offers/:id
func (c *Controller) GetOffer(ctx *gin.Context) {
	offerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid offer ID")
		return
	}

	var viewerID *uuid.UUID
	if id, ok := currentUserID(ctx); ok {
		viewerID = &id
	}

	offer, err := c.service.GetOffer(ctx.Request.Context(), offerID, viewerID)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			response.RespondError(ctx, http.StatusNotFound, "OfferNotFound", "Offer not found")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to get offer")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Offer retrieved successfully", offer, nil)
}

// ListMyOffers handles GET /api/v1/offers
func (c *Controller) ListMyOffers(ctx *gin.Context) {
	buyerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	var status *OfferStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := OfferStatus(strings.ToUpper(raw))
		if !parsed.IsValid() {
			response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid status filter")
			return
		}
		status = &parsed
	}

	result, err := c.service.ListBuyerOffers(ctx.Request.Context(), buyerID, status, page, pageSize)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to list offers")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Offers retrieved successfully", result, nil)
}

// ListOpenByEvent handles GET /api/v1/offers/event/:eventId
func (c *Controller) ListOpenByEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventId"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid event ID")
		return
	}

	offers, err := c.service.ListOpenOffers(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to list open offers")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Open offers retrieved successfully", offers, nil)
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
