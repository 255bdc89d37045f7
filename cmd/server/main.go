package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	inventoryapp "github.com/stocktier/backend/internal/application/inventory"
	partnerapp "github.com/stocktier/backend/internal/application/partner"
	pricingapp "github.com/stocktier/backend/internal/application/pricing"
	"github.com/stocktier/backend/internal/infrastructure/config"
	"github.com/stocktier/backend/internal/infrastructure/event"
	"github.com/stocktier/backend/internal/infrastructure/locking"
	"github.com/stocktier/backend/internal/infrastructure/logger"
	"github.com/stocktier/backend/internal/infrastructure/persistence"
	"github.com/stocktier/backend/internal/infrastructure/telemetry"
	"github.com/stocktier/backend/internal/interfaces/http/dto"
	"github.com/stocktier/backend/internal/interfaces/http/handler"
	"github.com/stocktier/backend/internal/interfaces/http/middleware"
	"github.com/stocktier/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting stocktier backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tel, err := telemetry.Setup(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	dbOpts := []persistence.Option{persistence.WithGormLogger(gormLog)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithTracing())
	}
	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	batchRepo := persistence.NewGormItemBatchRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	tierPriceRepo := persistence.NewGormTierPriceRepository(db.DB)
	specialPriceRepo := persistence.NewGormSpecialPriceRepository(db.DB)
	customerTierRepo := persistence.NewGormCustomerBrandTierRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Item locks: Redis when configured, in-process otherwise
	var lockManager inventoryapp.ItemLockManager
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		lockManager = locking.NewRedisLockManager(redisClient, cfg.Lock.WaitTimeout, cfg.Lock.TTL, cfg.Lock.RetryInterval)
		log.Info("Using Redis item locks", zap.String("addr", cfg.Redis.Addr()))
	} else {
		lockManager = locking.NewKeyedMutexManager(cfg.Lock.WaitTimeout)
		log.Info("Using in-process item locks")
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(inventoryapp.NewStockAlertHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	itemService := inventoryapp.NewItemService(itemRepo, batchRepo, brandRepo)
	ledgerService := inventoryapp.NewLedgerService(itemRepo, batchRepo, txRepo, txScope, lockManager)
	ledgerService.SetEventPublisher(eventBus)
	pricingService := pricingapp.NewPricingService(tierPriceRepo, specialPriceRepo, customerTierRepo, itemRepo)
	pricingService.SetEventPublisher(eventBus)
	customerService := partnerapp.NewCustomerService(customerRepo)
	brandService := partnerapp.NewBrandService(brandRepo)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterCustomValidations(); err != nil {
		log.Fatal("Failed to register binding validations", zap.Error(err))
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(&cfg.HTTP),
		tel.GinMiddleware(),
		middleware.Metrics(cfg.App.Name),
	)

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewTransactionHandler(ledgerService)).
		Register(handler.NewPricingHandler(pricingService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewBrandHandler(brandService)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
