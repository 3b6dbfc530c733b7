package offers

import (
	"matchly/internal/shared/config"
	"matchly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOfferRoutes configures offer lifecycle routes. All routes
// require authentication; mutations require the buyer role.
func SetupOfferRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	offers := rg.Group("/offers")
	offers.Use(middleware.JWTAuthWithConfig(cfg))
	{
		offers.POST("", middleware.RequireBuyer(), controller.CreateOffer)
		offers.GET("", middleware.RequireBuyer(), controller.ListMyOffers)
		offers.GET("/event/:eventId", middleware.RequireSeller(), controller.ListOpenByEvent)
		offers.GET("/:id", controller.GetOffer)
		offers.POST("/:id/cancel", middleware.RequireBuyer(), controller.CancelOffer)
	}
}
