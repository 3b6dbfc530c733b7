package matching

import (
	"matchly/internal/shared/config"
	"matchly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMatchingRoutes configures acceptance and settlement routes.
// Acceptance lives under /offers so the route mirrors the resource it
// acts on; transaction reads live under /transactions.
func SetupMatchingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	offers := rg.Group("/offers")
	offers.Use(middleware.JWTAuthWithConfig(cfg))
	{
		offers.POST("/:id/accept", middleware.RequireSeller(), controller.AcceptOffer)
	}

	transactions := rg.Group("/transactions")
	transactions.Use(middleware.JWTAuthWithConfig(cfg))
	{
		transactions.GET("", middleware.RequireSeller(), controller.ListMyTransactions)
		transactions.GET("/offer/:offerId", controller.GetOfferTransaction)
	}
}
