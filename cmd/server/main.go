package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/toystore/backend/internal/application/catalog"
	identityapp "github.com/toystore/backend/internal/application/identity"
	orderingapp "github.com/toystore/backend/internal/application/ordering"
	reportapp "github.com/toystore/backend/internal/application/report"
	shoppingapp "github.com/toystore/backend/internal/application/shopping"
	"github.com/toystore/backend/internal/infrastructure/auth"
	"github.com/toystore/backend/internal/infrastructure/config"
	"github.com/toystore/backend/internal/infrastructure/event"
	"github.com/toystore/backend/internal/infrastructure/logger"
	"github.com/toystore/backend/internal/infrastructure/persistence"
	"github.com/toystore/backend/internal/interfaces/http/handler"
	"github.com/toystore/backend/internal/interfaces/http/middleware"
	"github.com/toystore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Toy Store Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", zap.Error(err))
		}
	}()
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	// Run schema migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	cartRepo := persistence.NewGormCartItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)

	// Initialize event bus and register handlers
	eventBus := event.NewInMemoryEventBus(log)

	lowStockHandler := catalogapp.NewLowStockAlertHandler(productRepo, cfg.Store.LowStockThreshold, log)
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	// Initialize JWT service and token blacklist.
	// Redis keeps revoked tokens shared across instances; if it is not
	// reachable we fall back to the in-process blacklist.
	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, eventBus, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, orderRepo, analyticsRepo, log)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, log)
	orderService := orderingapp.NewOrderService(orderRepo, checkoutScope, eventBus, log)
	analyticsService := reportapp.NewAnalyticsService(analyticsRepo, orderRepo, cfg.Store.LowStockThreshold, log)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Authentication guards. Public routes skip them; protected groups
	// attach them explicitly in the route registrar.
	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	requireAdmin := middleware.RequireAdmin()

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(&router.StoreRoutes{
		Products:     productHandler,
		Auth:         authHandler,
		Cart:         cartHandler,
		Orders:       orderHandler,
		Users:        userHandler,
		Analytics:    analyticsHandler,
		RequireAuth:  requireAuth,
		RequireAdmin: requireAdmin,
	})
	r.Register(&router.SystemRoutes{System: systemHandler})
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
