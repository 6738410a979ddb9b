package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	forecastapp "github.com/cashcast/backend/internal/application/forecast"
	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/cashcast/backend/internal/infrastructure/cache"
	"github.com/cashcast/backend/internal/infrastructure/config"
	"github.com/cashcast/backend/internal/infrastructure/logger"
	"github.com/cashcast/backend/internal/infrastructure/persistence"
	"github.com/cashcast/backend/internal/interfaces/http/handler"
	"github.com/cashcast/backend/internal/interfaces/http/middleware"
	"github.com/cashcast/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			CashCast API
//	@version		1.0
//	@description	Cash flow forecasting engine - daily cash projections with tax obligations

//	@contact.name	API Support
//	@contact.url	https://github.com/cashcast/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting CashCast Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	scheduleRepo := persistence.NewGormRecurringScheduleRepository(db.DB)
	patternRepo := persistence.NewGormPaymentPatternRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	snapshotRepo := persistence.NewGormPositionSnapshotRepository(db.DB)
	forecastRepo := persistence.NewGormDailyForecastRepository(db.DB)
	obligationRepo := persistence.NewGormTaxObligationRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)

	// Build the tax profile from configuration
	profile := tax.Profile{
		VATRegistered:               cfg.Tax.VATRegistered,
		VATCadence:                  tax.VATCadence(cfg.Tax.VATCadence),
		FiscalYearEndMonth:          time.Month(cfg.Tax.FiscalYearEndMonth),
		FiscalYearEndDay:            cfg.Tax.FiscalYearEndDay,
		VATLiabilityAccountCode:     cfg.Tax.VATLiabilityAccountCode,
		PayrollLiabilityAccountCode: cfg.Tax.PayrollLiabilityAccountCode,
		HasPayroll:                  cfg.Tax.HasPayroll,
	}
	calculator := tax.NewCalculator(profile, tax.UKRateTable())
	engine := forecast.NewEngine(forecast.DefaultEngineConfig())

	// Forecast cache: Redis when reachable, in-memory otherwise
	var forecastCache cache.ForecastCache
	redisCache, err := cache.NewRedisForecastCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory forecast cache", zap.Error(err))
		redisCache = nil
		forecastCache = cache.NewInMemoryForecastCache()
	} else {
		forecastCache = redisCache
		log.Info("Redis forecast cache connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize application services
	forecastService := forecastapp.NewForecastService(
		bankAccountRepo,
		invoiceRepo,
		scheduleRepo,
		patternRepo,
		budgetRepo,
		snapshotRepo,
		forecastRepo,
		obligationRepo,
		ledgerRepo,
		calculator,
		engine,
		forecastCache,
		cfg.Forecast,
		log,
	)

	// Initialize HTTP handlers
	forecastHandler := handler.NewForecastHandler(forecastService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	ginEngine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	ginEngine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	ginEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		ginEngine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	ginEngine.GET("/health", healthHandler(db, redisCache))

	// Initialize domain router
	r := router.NewRouter(ginEngine)

	// Forecast domain
	forecastRoutes := router.NewDomainGroup("forecast", "/forecast")
	forecastRoutes.GET("", forecastHandler.GenerateForecast)
	forecastRoutes.GET("/obligations", forecastHandler.GetUpcomingObligations)

	r.Register(forecastRoutes)

	// Register system routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()
	log.Info("Route groups registered",
		zap.Strings("groups", []string{forecastRoutes.Name(), systemRoutes.Name()}))

	// Also keep a simple ping at root API level for basic health checks
	ginEngine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
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

// healthHandler returns a handler for health check endpoints. A nil
// redisCache means the in-memory fallback is active; the service is then
// reported as healthy with the cache marked accordingly.
func healthHandler(db *persistence.Database, redisCache *cache.RedisForecastCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}

		status := "healthy"
		cacheStatus := "in-memory"
		if redisCache != nil {
			cacheStatus = "ok"
			if err := redisCache.Ping(c.Request.Context()); err != nil {
				reqLog.Warn("Redis health check failed", zap.Error(err))
				status = "degraded"
				cacheStatus = "error"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
			"cache":    cacheStatus,
		})
	}
}
