package events

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

// GetEvent handles GET /api/v1/events/:id
func (c *Controller) GetEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "InvalidArgument", "Invalid event ID")
		return
	}

	event, err := c.service.GetEventByID(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondError(ctx, http.StatusNotFound, "EventNotFound", "Event not found")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to get event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// GetUpcomingEvents handles GET /api/v1/events/upcoming
func (c *Controller) GetUpcomingEvents(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 10
	}

	events, err := c.service.GetUpcomingEvents(ctx.Request.Context(), limit)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Internal", "Failed to get upcoming events")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Upcoming events retrieved successfully", gin.H{
		"events": events,
		"count":  len(events),
	}, nil)
}
