package routes

import (
	"net/http"
	"time"

	"matchly/internal/events"
	"matchly/internal/listings"
	"matchly/internal/matching"
	"matchly/internal/notifications"
	"matchly/internal/offers"
	"matchly/internal/payments"
	"matchly/internal/pricing"
	"matchly/internal/shared/config"
	"matchly/internal/shared/database"
	"matchly/pkg/cache"
	"matchly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Notifier
	logger   *logger.Logger

	// Shared across feature setups
	eventService events.Service
	offerRepo    offers.Repository
	listingRepo  listings.Repository
	gateway      payments.Gateway

	sweeper       *offers.ExpirySweeper
	goLiveSweeper *listings.GoLiveSweeper
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
		logger:   logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes and wires the feature
// services together.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Shared collaborators
	r.gateway = payments.NewHTTPGateway(r.config.Payment)
	r.offerRepo = offers.NewRepository(r.db.GetPostgreSQL())
	r.listingRepo = listings.NewRepository(r.db.GetPostgreSQL())

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupEventRoutes(api)
		r.setupListingRoutes(api)

		// Offers before matching: the instant matcher hooks back into
		// the offer service after both exist.
		offerService := r.setupOfferRoutes(api)
		matchingService := r.setupMatchingRoutes(api)

		matcher := matching.NewInstantMatcher(r.offerRepo, r.listingRepo, matchingService, r.logger)
		offerService.SetInstantMatcher(matcher)
	}

	r.sweeper = offers.NewExpirySweeper(r.offerRepo, r.gateway, r.config.Marketplace.SweepInterval, r.logger)
	r.goLiveSweeper = listings.NewGoLiveSweeper(r.listingRepo, r.config.Marketplace.SweepInterval, r.logger)
}

// Sweeper returns the expiry sweeper for lifecycle management by main
func (r *Router) Sweeper() *offers.ExpirySweeper {
	return r.sweeper
}

// GoLiveSweeper returns the listing go-live sweeper for lifecycle
// management by main
func (r *Router) GoLiveSweeper() *listings.GoLiveSweeper {
	return r.goLiveSweeper
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "matchly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "matchly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupEventRoutes configures event browsing routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	r.eventService = events.NewService(eventRepo, cacheService)

	eventController := events.NewController(r.eventService)
	events.SetupEventRoutes(rg, eventController)
}

// setupOfferRoutes configures the offer lifecycle routes
func (r *Router) setupOfferRoutes(rg *gin.RouterGroup) offers.Service {
	pricingEngine := pricing.NewHeuristicEngine()

	offerService := offers.NewService(r.offerRepo, r.eventService, pricingEngine, r.gateway, r.config.Marketplace, r.logger)
	offerController := offers.NewController(offerService)
	offers.SetupOfferRoutes(rg, offerController, r.config)

	return offerService
}

// setupListingRoutes configures listing intake and browsing routes
func (r *Router) setupListingRoutes(rg *gin.RouterGroup) {
	listingService := listings.NewService(r.listingRepo, r.eventService, r.logger)
	listingController := listings.NewController(listingService)
	listings.SetupListingRoutes(rg, listingController, r.config)
}

// setupMatchingRoutes configures acceptance and settlement routes
func (r *Router) setupMatchingRoutes(rg *gin.RouterGroup) matching.Service {
	matchingRepo := matching.NewRepository(r.db.GetPostgreSQL())
	recorder := payments.NewReconciliationRecorder(r.db.GetRedisClient())

	matchingService := matching.NewService(matchingRepo, r.gateway, recorder, r.notifier, r.config.Marketplace, r.logger)
	matchingController := matching.NewController(matchingService)
	matching.SetupMatchingRoutes(rg, matchingController, r.config)

	return matchingService
}
