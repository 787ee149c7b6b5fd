package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/tipwave/tip_ledger_backend/cmd/docs"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/middleware"
	"github.com/tipwave/tip_ledger_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	webhookLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	// Webhook-facing: rate limited, no shared secret (the processor signs
	// webhooks upstream of this service).
	syncHandler := newSyncHandler(services.Registry, services.SyncJob)
	sync := v1.Group("/sync")
	sync.POST("/mark-dirty", middleware.RateLimit(webhookLimiter), syncHandler.markDirty)

	// Ops-facing: shared-secret header required.
	ops := v1.Group("", middleware.SharedSecretAuth(cfg.ReconcileSharedSecret))
	ops.POST("/sync/backfill-all", syncHandler.backfillAll)

	balancesHandler := newBalancesHandler(services.Balance)
	ops.POST("/balances/backfill", balancesHandler.backfillBalances)

	reconcileHandler := newReconcileHandler(services.Reconciliation)
	ops.GET("/reconcile", reconcileHandler.reconcile)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
