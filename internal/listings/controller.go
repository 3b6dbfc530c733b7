package listings

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

// BulkCreate handles POST /api/v1/listings/bulk
func (c *Controller) BulkCreate(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req BulkCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid request: "+err.Error())
		return
	}

	result, err := c.service.BulkCreate(ctx.Request.Context(), sellerID, req)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to process listings")
		return
	}

	// 207-style outcome: the batch succeeded even if some items did not
	status := http.StatusCreated
	if result.Accepted == 0 {
		status = http.StatusUnprocessableEntity
	}
	response.RespondJSON(ctx, "success", status, "Listings processed", result, nil)
}

// Publish handles POST /api/v1/listings/:id/publish
func (c *Controller) Publish(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid listing ID")
		return
	}

	listing, err := c.service.PublishListing(ctx.Request.Context(), sellerID, listingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			response.RespondError(ctx, http.StatusNotFound, "ListingNotFound", "Listing not found")
		case errors.Is(err, ErrNotListingOwner):
			response.RespondError(ctx, http.StatusForbidden, "NotListingOwner", "Listing belongs to another seller")
		case errors.Is(err, ErrListingNotDraft):
			response.RespondError(ctx, http.StatusConflict, "ListingNotDraft", "Listing is not a draft")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to publish listing")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Listing published successfully", listing, nil)
}

// Remove handles DELETE /api/v1/listings/:id
func (c *Controller) Remove(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid listing ID")
		return
	}

	if err := c.service.RemoveListing(ctx.Request.Context(), sellerID, listingID); err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			response.RespondError(ctx, http.StatusNotFound, "ListingNotFound", "Listing not found")
		case errors.Is(err, ErrNotListingOwner):
			response.RespondError(ctx, http.StatusForbidden, "NotListingOwner", "Listing belongs to another seller")
		case errors.Is(err, ErrListingNotOpen):
			response.RespondError(ctx, http.StatusConflict, "ListingNotOpen", "Listing is no longer open")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to remove listing")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Listing removed successfully", nil, nil)
}

// GetListing handles GET /api/v1/listings/:id
func (c *Controller) GetListing(ctx *gin.Context) {
	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid listing ID")
		return
	}

	listing, err := c.service.GetListing(ctx.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			response.RespondError(ctx, http.StatusNotFound, "ListingNotFound", "Listing not found")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to get listing")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Listing retrieved successfully", listing, nil)
}

// ListMyListings handles GET /api/v1/listings
func (c *Controller) ListMyListings(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	result, err := c.service.ListSellerListings(ctx.Request.Context(), sellerID, page, pageSize)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to list listings")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Listings retrieved successfully", result, nil)
}

// ListOpenByEvent handles GET /api/v1/listings/event/:eventId
func (c *Controller) ListOpenByEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventId"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid event ID")
		return
	}

	items, err := c.service.ListOpenListings(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to list open listings")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Open listings retrieved successfully", gin.H{
		"listings": items,
		"count":    len(items),
	}, nil)
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
