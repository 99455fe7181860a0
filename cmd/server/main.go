package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/petroerp/backend/internal/application/finance"
	identityapp "github.com/petroerp/backend/internal/application/identity"
	inventoryapp "github.com/petroerp/backend/internal/application/inventory"
	partnerapp "github.com/petroerp/backend/internal/application/partner"
	tradeapp "github.com/petroerp/backend/internal/application/trade"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/infrastructure/auth"
	"github.com/petroerp/backend/internal/infrastructure/cache"
	"github.com/petroerp/backend/internal/infrastructure/config"
	"github.com/petroerp/backend/internal/infrastructure/logger"
	"github.com/petroerp/backend/internal/infrastructure/persistence"
	"github.com/petroerp/backend/internal/infrastructure/telemetry"
	"github.com/petroerp/backend/internal/interfaces/http/handler"
	"github.com/petroerp/backend/internal/interfaces/http/middleware"
	"github.com/petroerp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PetroERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Metrics
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), &cfg.Metrics, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down metrics", zap.Error(err))
		}
	}()
	allocatorMetrics, err := telemetry.NewAllocatorMetrics(meterProvider.Meter("petroerp.sequence"))
	if err != nil {
		log.Fatal("Failed to create allocator metrics", zap.Error(err))
	}

	// Reference number store: Redis when configured, otherwise the relational
	// counter tables share the primary database.
	var seqStore sequence.Store
	if cfg.Sequence.UseRedis {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		seqStore = cache.NewRedisSequenceStore(redisClient)
		log.Info("Sequence store backed by redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		seqStore = persistence.NewGormSequenceStore(db.DB)
	}

	allocator := sequence.NewAllocator(seqStore,
		sequence.WithLogger(log),
		sequence.WithRecorder(allocatorMetrics),
		sequence.WithMaxAttempts(cfg.Sequence.MaxAttempts),
		sequence.WithBackoffStep(cfg.Sequence.BackoffStep),
	)

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	batchRepo := persistence.NewGormStockBatchRepository(db.DB)
	invoiceRepo := persistence.NewGormSalesInvoiceRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	buyerService := partnerapp.NewBuyerService(buyerRepo)
	contractService := tradeapp.NewContractService(contractRepo)
	shipmentService := tradeapp.NewShipmentService(shipmentRepo, contractRepo)
	batchService := inventoryapp.NewBatchService(batchRepo)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, buyerRepo, allocator, log)
	receiptService := financeapp.NewReceiptService(receiptRepo, supplierRepo, shipmentRepo, contractRepo, batchRepo, allocator, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.Setup(router.Config{
		Logger:      log,
		JWTService:  jwtService,
		DB:          db,
		MaxBodySize: cfg.HTTP.MaxBodySize,
	}, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Buyer:    handler.NewBuyerHandler(buyerService),
		Contract: handler.NewContractHandler(contractService),
		Shipment: handler.NewShipmentHandler(shipmentService),
		Batch:    handler.NewBatchHandler(batchService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Receipt:  handler.NewReceiptHandler(receiptService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
