package events

import (
	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures event browsing routes
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		events.GET("/upcoming", controller.GetUpcomingEvents)
		events.GET("/:id", controller.GetEvent)
	}
}
