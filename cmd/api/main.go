package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	identityport "github.com/sportxbet/tipstore/internal/domain/port/identity"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
	catalogUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/catalog"
	ledgerUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/ledger"
	sessionUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/session"
	settlementUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/settlement"

	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/handler"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/routes"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/database"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/database/migration"
	idGenerator "github.com/sportxbet/tipstore/internal/infrastructure/adapter/id"
	identityProvider "github.com/sportxbet/tipstore/internal/infrastructure/adapter/identity"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/logger"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/repository"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/telegram"
	timeProvider "github.com/sportxbet/tipstore/internal/infrastructure/adapter/time"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/tokenstore"
	"github.com/sportxbet/tipstore/internal/infrastructure/config"
	"github.com/sportxbet/tipstore/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	tp := timeProvider.NewRealTimeProvider()
	idGen := idGenerator.NewUUIDGenerator()

	// Database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories and unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	recRepo := repository.NewRecommendationRepository(dbManager.DB(), tp, appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Handshake token store: Redis when configured, in-memory otherwise
	var tokenStore persistence.TokenStore
	if cfg.Redis.Addr != "" {
		redisClient, err := tokenstore.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer redisClient.Close()
		tokenStore = tokenstore.NewRedisStore(redisClient)
	} else {
		appLogger.Warn("Redis not configured, handshake tokens held in memory", nil)
		tokenStore = tokenstore.NewMemoryStore(tp)
	}

	// Bot messenger
	var bot identityport.BotMessenger
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBase)
	} else {
		appLogger.Warn("Telegram bot token not configured, bot replies disabled", nil)
	}

	// Money bounds and grants from config
	minDeposit, err := entity.ParseAmount(cfg.Wallet.MinDeposit)
	if err != nil {
		log.Fatalf("Invalid wallet.minDeposit: %v", err)
	}
	maxDeposit, err := entity.ParseAmount(cfg.Wallet.MaxDeposit)
	if err != nil {
		log.Fatalf("Invalid wallet.maxDeposit: %v", err)
	}
	welcomeBonus, err := entity.ParseAmount(cfg.Session.WelcomeBonus)
	if err != nil {
		log.Fatalf("Invalid session.welcomeBonus: %v", err)
	}
	standInBalance, err := entity.ParseAmount(cfg.Session.StandInBalance)
	if err != nil {
		log.Fatalf("Invalid session.standInBalance: %v", err)
	}

	// Use cases
	ledgerService := ledgerUseCase.NewService(uow, tp, idGen, appLogger, ledgerUseCase.Bounds{
		MinDepositCents: minDeposit,
		MaxDepositCents: maxDeposit,
	})
	settlementService := settlementUseCase.NewService(uow, tp, idGen, appLogger)
	catalogService := catalogUseCase.NewService(uow, tp, idGen, appLogger, cfg.Catalog.CascadeResults)

	primary := identityProvider.NewLocalProvider(userRepo, tp, idGen, appLogger, cfg.Session.AdminEmail)
	var fallback identityport.Provider
	if cfg.Session.StandInEnabled {
		fallback = identityProvider.NewStandInProvider(userRepo, ledgerService, tp, idGen, appLogger, cfg.Session.AdminEmail, standInBalance)
	}

	sessionService := sessionUseCase.NewService(
		primary,
		fallback,
		ledgerService,
		userRepo,
		tokenStore,
		bot,
		tp,
		idGen,
		appLogger,
		sessionUseCase.Config{
			JWTSecret:            []byte(cfg.Session.JWTSecret),
			SessionTTL:           cfg.Session.SessionTTL,
			WelcomeBonusCents:    welcomeBonus,
			StandInBalanceCents:  standInBalance,
			HandshakeTokenTTL:    cfg.Session.HandshakeTokenTTL,
			TelegramAuthLinkBase: cfg.Telegram.AuthLinkBase,
		},
	)

	// Seed sample listings on an empty catalog
	if cfg.Catalog.SeedSamples {
		if err := migration.SeedRecommendations(context.Background(), recRepo, idGen, tp, appLogger); err != nil {
			appLogger.Error("Failed to seed recommendations", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Metrics side server
	var appMetrics *metrics.Metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New(prometheus.DefaultRegisterer)
		metricsServer = metrics.StartServer(cfg.Metrics.Port, func(ctx context.Context) error {
			sqlDB, err := dbManager.DB().DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		appLogger.Info("Metrics server started", map[string]any{
			"port": cfg.Metrics.Port,
		})
	}

	// HTTP API
	authHandler := handler.NewAuthHandler(sessionService, appMetrics, appLogger)
	walletHandler := handler.NewWalletHandler(ledgerService, appMetrics, appLogger)
	catalogHandler := handler.NewCatalogHandler(catalogService, settlementService, tp, appMetrics, appLogger)
	telegramHandler := handler.NewTelegramHandler(sessionService, appMetrics, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, sessionService)
	routes.SetupRoutes(router, authHandler, walletHandler, catalogHandler, telegramHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Drain the per-user settlement workers before closing the listener
	settlementService.Shutdown()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			appLogger.Error("Metrics server forced to shutdown", map[string]any{
				"error": err.Error(),
			})
		}
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or TS_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or TS_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or TS_DB_NAME environment variable)")
	}
	if cfg.Session.JWTSecret == "" {
		missing = append(missing, "session.jwtSecret (or TS_JWT_SECRET environment variable)")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	if cfg.Environment == config.Production && cfg.Telegram.BotToken == "" {
		log.Println("Warning: telegram.botToken is not set; bot integration is disabled")
	}

	return nil
}
