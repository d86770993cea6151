package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greencycle/greencycle/backend/internal/adapters/cache"
	"github.com/greencycle/greencycle/backend/internal/adapters/database"
	"github.com/greencycle/greencycle/backend/internal/adapters/events"
	"github.com/greencycle/greencycle/backend/internal/adapters/providers/geolocation"
	"github.com/greencycle/greencycle/backend/internal/adapters/providers/verification"
	"github.com/greencycle/greencycle/backend/internal/adapters/search"
	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/api/routes"
	"github.com/greencycle/greencycle/backend/internal/application/services"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/redis"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/typesense"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
	"github.com/greencycle/greencycle/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.Logging, "greencycle-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis; caching, rate limiting and events degrade
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	var searchRepo repositories.TaskSearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "nominatim":
		geolocationProvider = geolocation.NewNominatimProviderWithOptions(
			cfg.Geolocation.CountryCodes,
			cfg.Geolocation.Contact,
			cacheProvider,
			cfg.Geolocation.BaseURL,
			nil,
		)
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	verifier := verification.NewSimulatedVerifier(
		cfg.Verification.AnalysisDelay,
		cfg.Verification.CollectionDelay,
	)

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	reportAdapter := database.NewReportAdapter(pgClient)
	rewardAdapter := database.NewRewardAdapter(pgClient)
	transactionAdapter := database.NewTransactionAdapter(pgClient)
	collectedAdapter := database.NewCollectedWasteAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(pgClient)
	ledgerAdapter := database.NewLedgerAdapter(pgClient)

	// Initialize services
	userService := services.NewUserService(userAdapter)
	authService := services.NewAuthService(userService, cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	reportService := services.NewReportService(reportAdapter, ledgerAdapter, searchRepo, verifier, eventBus, cacheProvider, metrics)
	taskService := services.NewTaskService(reportAdapter, ledgerAdapter, collectedAdapter, notificationAdapter, searchRepo, verifier, eventBus, metrics)
	rewardService := services.NewRewardService(rewardAdapter, transactionAdapter, ledgerAdapter, eventBus, metrics)
	notificationService := services.NewNotificationService(notificationAdapter)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	reportHandler := handlers.NewReportHandler(reportService)
	taskHandler := handlers.NewTaskHandler(taskService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)
	eventStreamHandler := handlers.NewEventStreamHandler(eventBus)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		reportHandler,
		taskHandler,
		rewardHandler,
		notificationHandler,
		geolocationHandler,
		eventStreamHandler,
		authService,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the event stream holds connections open
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
