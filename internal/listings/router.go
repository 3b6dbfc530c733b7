package listings

import (
	"matchly/internal/shared/config"
	"matchly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupListingRoutes configures listing intake and browsing routes
func SetupListingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	listings := rg.Group("/listings")
	listings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		listings.POST("/bulk", middleware.RequireSeller(), controller.BulkCreate)
		listings.GET("", middleware.RequireSeller(), controller.ListMyListings)
		listings.GET("/:id", controller.GetListing)
		listings.POST("/:id/publish", middleware.RequireSeller(), controller.Publish)
		listings.DELETE("/:id", middleware.RequireSeller(), controller.Remove)
		listings.GET("/event/:eventId", controller.ListOpenByEvent)
	}
}
