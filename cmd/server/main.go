package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appbooking "github.com/rentals/backend/internal/application/booking"
	appcontract "github.com/rentals/backend/internal/application/contract"
	appdocument "github.com/rentals/backend/internal/application/document"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/rentals/backend/internal/infrastructure/auth"
	"github.com/rentals/backend/internal/infrastructure/cache"
	"github.com/rentals/backend/internal/infrastructure/config"
	"github.com/rentals/backend/internal/infrastructure/event"
	"github.com/rentals/backend/internal/infrastructure/logger"
	"github.com/rentals/backend/internal/infrastructure/persistence"
	"github.com/rentals/backend/internal/infrastructure/printing"
	"github.com/rentals/backend/internal/infrastructure/scheduler"
	"github.com/rentals/backend/internal/infrastructure/storage"
	"github.com/rentals/backend/internal/infrastructure/telemetry"
	"github.com/rentals/backend/internal/interfaces/http/handler"
	"github.com/rentals/backend/internal/interfaces/http/middleware"
	"github.com/rentals/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/rentals/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Rentals Backend API
//	@version		1.0
//	@description	Rental marketplace API: property visits, bookings, lease contracts and tenant documents.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log = providers.Logs.Bridge(log)

	log.Info("Starting rentals backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("timezone", cfg.App.Location().String()),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" {
		// postgres schemas come from cmd/migrate
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, dbSystem(cfg.Database.Driver), log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus: notifications are deduplicated by event ID, metrics see every event
	eventBus := event.NewInMemoryEventBus(log)
	idempotencyStore := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()
	notifications := event.NewNotificationHandler(
		event.NewLogNotifier(log),
		event.RepositoryDirectory{Properties: propertyRepo, Contracts: contractRepo},
		log,
	)
	eventBus.Subscribe(event.NewIdempotentHandler(notifications, idempotencyStore, "notifications", cfg.Redis.NotificationTTL, log))
	eventMetrics, err := telemetry.NewEventMetrics(providers.Meter.Meter(cfg.App.Name))
	if err != nil {
		log.Fatal("Failed to create event metrics", zap.Error(err))
	}
	eventBus.Subscribe(eventMetrics)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	objectStorage, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	renderer, closeRenderer, err := printing.New(cfg.PDF, log)
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := closeRenderer(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Application services
	propertyService := appproperty.NewPropertyService(propertyRepo, bookingRepo, log)
	bookingService := appbooking.NewBookingService(bookingRepo, propertyRepo, txScope, log,
		appbooking.WithLocation(cfg.App.Location()),
	)
	bookingService.SetEventPublisher(eventBus)
	contractService := appcontract.NewContractService(contractRepo, propertyRepo, documentRepo,
		appcontract.ActivationGate{
			RequiredCategories: cfg.Documents.RequiredCategories,
			Enforce:            cfg.Documents.EnforceOnActivation,
		},
		log,
	)
	contractService.SetEventPublisher(eventBus)
	contractService.SetRenderer(renderer)
	documentService := appdocument.NewDocumentService(documentRepo, contractRepo, objectStorage,
		appdocument.Options{
			RequiredCategories: cfg.Documents.RequiredCategories,
			UploadURLExpiry:    cfg.Storage.PresignExpiration,
			VerifyUploads:      cfg.Storage.VerifyUploads,
		},
		log,
	)
	documentService.SetEventPublisher(eventBus)

	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	if cfg.Scheduler.Enabled {
		sweeper, err := scheduler.NewLifecycleSweeper(bookingService, contractService, cfg.Scheduler, log)
		if err != nil {
			log.Fatal("Failed to create lifecycle sweeper", zap.Error(err))
		}
		if err := sweeper.Start(sweeperCtx); err != nil {
			log.Fatal("Failed to start lifecycle sweeper", zap.Error(err))
		}
		defer func() {
			if err := sweeper.Stop(context.Background()); err != nil {
				log.Error("Error stopping lifecycle sweeper", zap.Error(err))
			}
		}()
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:          cfg.Telemetry.Profiling.Enabled,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", handler.NewHealthHandler(db).Check)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	jwtService := auth.NewJWTService(cfg.JWT)
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	r := router.NewRouter(engine)
	r.Register(router.APIGroups(router.Handlers{
		Property: handler.NewPropertyHandler(propertyService),
		Booking:  handler.NewBookingHandler(bookingService),
		Contract: handler.NewContractHandler(contractService),
		Document: handler.NewDocumentHandler(documentService),
	},
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.TracingAttributeInjector(),
	)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// dbSystem maps the configured driver to the OpenTelemetry db.system value
func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}
