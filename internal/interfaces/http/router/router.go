// Package router wires HTTP handlers onto the gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petroerp/backend/internal/infrastructure/auth"
	"github.com/petroerp/backend/internal/infrastructure/logger"
	"github.com/petroerp/backend/internal/infrastructure/persistence"
	"github.com/petroerp/backend/internal/interfaces/http/handler"
	"github.com/petroerp/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	Supplier *handler.SupplierHandler
	Buyer    *handler.BuyerHandler
	Contract *handler.ContractHandler
	Shipment *handler.ShipmentHandler
	Batch    *handler.BatchHandler
	Invoice  *handler.InvoiceHandler
	Receipt  *handler.ReceiptHandler
}

// Config carries the dependencies the router needs beyond the handlers
type Config struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	DB          *persistence.Database
	MaxBodySize int64
}

// Setup builds the gin engine with the full middleware stack and all routes
func Setup(cfg Config, h Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.GET("/health", healthHandler(cfg.DB))
	engine.GET("/ready", readyHandler(cfg.DB))

	// Public routes: login and refresh must work without a token
	public := engine.Group("/api/v1/auth")
	public.POST("/login", h.Auth.Login)
	public.POST("/refresh", h.Auth.Refresh)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTService))

	api.GET("/auth/me", h.Auth.Me)
	api.POST("/auth/change-password", h.Auth.ChangePassword)
	api.POST("/auth/register", middleware.RequireRole("admin"), h.Auth.Register)

	suppliers := api.Group("/suppliers")
	suppliers.POST("", h.Supplier.Create)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.Get)
	suppliers.PUT("/:id", h.Supplier.Update)
	suppliers.POST("/:id/block", middleware.RequireRole("admin", "finance"), h.Supplier.Block)
	suppliers.POST("/:id/activate", middleware.RequireRole("admin", "finance"), h.Supplier.Activate)

	buyers := api.Group("/buyers")
	buyers.POST("", h.Buyer.Create)
	buyers.GET("", h.Buyer.List)
	buyers.GET("/:id", h.Buyer.Get)
	buyers.PUT("/:id", h.Buyer.Update)
	buyers.POST("/:id/hold", middleware.RequireRole("admin", "finance"), h.Buyer.Hold)
	buyers.POST("/:id/activate", middleware.RequireRole("admin", "finance"), h.Buyer.Activate)

	contracts := api.Group("/contracts")
	contracts.POST("", h.Contract.Create)
	contracts.GET("", h.Contract.List)
	contracts.GET("/:id", h.Contract.Get)
	contracts.GET("/:id/shipments", h.Shipment.ListByContract)
	contracts.POST("/:id/activate", h.Contract.Activate)
	contracts.POST("/:id/complete", h.Contract.Complete)
	contracts.POST("/:id/cancel", h.Contract.Cancel)

	shipments := api.Group("/shipments")
	shipments.POST("", h.Shipment.Nominate)
	shipments.GET("", h.Shipment.List)
	shipments.GET("/:id", h.Shipment.Get)
	shipments.POST("/:id/load", h.Shipment.RecordLoading)
	shipments.POST("/:id/discharge", h.Shipment.RecordDischarge)
	shipments.POST("/:id/cancel", h.Shipment.Cancel)

	batches := api.Group("/batches")
	batches.GET("", h.Batch.List)
	batches.GET("/available", h.Batch.ListAvailable)
	batches.GET("/:id", h.Batch.Get)
	batches.POST("/:id/draw", h.Batch.Draw)
	batches.POST("/:id/adjust", middleware.RequireRole("admin", "operations"), h.Batch.Adjust)
	batches.POST("/:id/quarantine", h.Batch.Quarantine)
	batches.POST("/:id/release", h.Batch.Release)

	// Static segments must be registered before the :id wildcard
	invoices := api.Group("/invoices")
	invoices.POST("", h.Invoice.Issue)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/next-number", h.Invoice.PreviewNumber)
	invoices.GET("/by-number/:number", h.Invoice.GetByNumber)
	invoices.GET("/:id", h.Invoice.Get)
	invoices.POST("/:id/pay", h.Invoice.MarkPaid)
	invoices.POST("/:id/void", middleware.RequireRole("admin", "finance"), h.Invoice.Void)

	receipts := api.Group("/receipts")
	receipts.POST("", h.Receipt.Post)
	receipts.GET("", h.Receipt.List)
	receipts.GET("/next-number", h.Receipt.PreviewNumber)
	receipts.GET("/by-number/:number", h.Receipt.GetByNumber)
	receipts.GET("/:id", h.Receipt.Get)
	receipts.POST("/:id/reverse", middleware.RequireRole("admin", "finance"), h.Receipt.Reverse)

	return engine
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ready": true})
	}
}
