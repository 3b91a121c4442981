package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"zapshift/internal/auth"
	"zapshift/internal/domain"
	"zapshift/internal/handler"
	"zapshift/internal/middleware"
	"zapshift/internal/repository"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	ParcelHandler  *handler.ParcelHandler
	PaymentHandler *handler.PaymentHandler
	RiderHandler   *handler.RiderHandler
	Verifier       auth.TokenVerifier
	UserRepo       repository.UserRepository
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	requireAuth := middleware.RequireAuth(deps.Verifier)
	requireAdminUsers := middleware.RequireCapability(deps.UserRepo, domain.CapManageUsers)
	requireAdminRiders := middleware.RequireCapability(deps.UserRepo, domain.CapManageRiders)
	requireAssign := middleware.RequireCapability(deps.UserRepo, domain.CapAssignRider)

	// Liveness.
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Zap Shift is shifting"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.Create)
			users.GET("", requireAuth, requireAdminUsers, deps.UserHandler.GetAll)
			users.GET("/:email/role", requireAuth, requireAdminUsers, deps.UserHandler.GetRole)
			users.PATCH("/:email/role", requireAuth, requireAdminUsers, deps.UserHandler.UpdateRole)
		}

		// Parcel routes.
		parcels := v1.Group("/parcels")
		{
			parcels.GET("", deps.ParcelHandler.List)
			parcels.GET("/:id", deps.ParcelHandler.Get)
			parcels.POST("", deps.ParcelHandler.Create)
			parcels.DELETE("/:id", deps.ParcelHandler.Delete)
			parcels.PATCH("/:id/assign-rider", requireAuth, requireAssign, deps.ParcelHandler.AssignRider)
		}

		// Payment routes. Confirm is invoked by the processor's redirect
		// and carries no bearer credential.
		payments := v1.Group("/payments")
		{
			payments.POST("/checkout-session", requireAuth, deps.PaymentHandler.CreateCheckoutSession)
			payments.PATCH("/confirm", deps.PaymentHandler.Confirm)
			payments.GET("", requireAuth, deps.PaymentHandler.List)
		}

		// Rider routes.
		riders := v1.Group("/riders")
		{
			riders.GET("", deps.RiderHandler.List)
			riders.POST("", deps.RiderHandler.Create)
			riders.PATCH("/:id/status", requireAuth, requireAdminRiders, deps.RiderHandler.UpdateStatus)
		}
	}

	return router
}
