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

	"github.com/synchealth/wellness-backend/internal/adapters/cache"
	"github.com/synchealth/wellness-backend/internal/adapters/registry"
	"github.com/synchealth/wellness-backend/internal/adapters/spreadsheet"
	"github.com/synchealth/wellness-backend/internal/api/handlers"
	"github.com/synchealth/wellness-backend/internal/api/middleware"
	"github.com/synchealth/wellness-backend/internal/api/routes"
	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/internal/infrastructure/clients/aiservice"
	"github.com/synchealth/wellness-backend/internal/infrastructure/clients/directory"
	"github.com/synchealth/wellness-backend/internal/infrastructure/clients/redis"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
	queryservices "github.com/synchealth/wellness-backend/internal/query/services"
	"github.com/synchealth/wellness-backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize the member registry
	memberRegistry := registry.NewMemoryRegistry()

	// Core services
	scoringService := services.NewRiskScoringService()
	importService := services.NewMemberImportService(scoringService)
	matcher := services.NewTieredMemberMatcher()
	filterService := services.NewRiskFilterService(matcher)
	queryService := queryservices.NewMemberQueryService()

	// Directory sync when a directory is configured, seed data otherwise
	var syncService handlers.SyncService
	if cfg.Directory.BaseURL != "" {
		directoryClient, err := directory.NewClient(&cfg.Directory)
		if err != nil {
			log.Fatalf("Failed to initialize directory client: %v", err)
		}
		sync := services.NewDirectorySyncService(directoryClient, memberRegistry, scoringService)
		syncService = sync

		if count, err := sync.Sync(ctx); err != nil {
			logger.Warn().Err(err).Msg("initial directory sync failed, starting with an empty roster")
		} else {
			logger.Info().Int("members", count).Msg("initial directory sync complete")
		}
	} else {
		seedService := services.NewMemberSeedService(scoringService)
		roster := seedService.BuildRoster(services.DefaultSeedCount)
		if err := memberRegistry.ReplaceAll(ctx, roster); err != nil {
			log.Fatalf("Failed to seed member registry: %v", err)
		}
		logger.Info().Int("members", len(roster)).Msg("no directory configured, seeded demo roster")
	}

	// AI analysis provider
	var analysisProvider providers.AnalysisProvider
	if cfg.AIService.BaseURL == "" {
		logger.Warn().Msg("AI_SERVICE_URL is not set; analysis endpoint disabled")
	} else {
		aiClient, err := aiservice.NewClient(&cfg.AIService)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize AI service client")
		} else {
			analysisProvider = aiClient
		}
	}

	// Initialize handlers

	memberHandler := handlers.NewMemberHandler(memberRegistry, queryService, syncService)

	importHandler := handlers.NewImportHandler(
		spreadsheet.NewExcelReader(),
		importService,
		memberRegistry,
		cfg.Import,
	)

	analysisHandler := handlers.NewAnalysisHandler(
		analysisProvider,
		filterService,
		queryService,
		memberRegistry,
		cacheProvider,
		cfg.AIService,
	)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		logger.Info().Msg("cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		memberHandler,
		importHandler,
		analysisHandler,
		cacheMiddleware,
		cfg.Server.BearerToken,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
