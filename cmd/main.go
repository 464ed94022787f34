package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"codehunt/giveaway/internal/config"
	"codehunt/giveaway/internal/handler"
	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
	"codehunt/giveaway/internal/service"
	"codehunt/giveaway/internal/telegram"
	jwtpkg "codehunt/giveaway/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize membership cache (Redis or in-memory)
	var membershipCache repository.MembershipCache
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		membershipCache = repository.NewRedisMembershipCache(redisClient)
		logger.Info("using Redis membership cache")
	case "memory":
		membershipCache = repository.NewMemoryMembershipCache()
		logger.Info("using in-memory membership cache")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	participantRepo := repository.NewPGParticipantRepository(db)
	entryRepo := repository.NewPGEntryRepository(db)
	preferenceRepo := repository.NewPGPreferenceRepository(db)

	// 7. Initialize external collaborators
	telegramClient := telegram.NewClient(cfg.Telegram, cfg.Giveaway.RequiredChannel)

	// 8. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)

	// 9. Initialize services
	codes := service.NewCodeSet(cfg.Giveaway.ValidCodes)
	registryService := service.NewRegistryService(
		participantRepo, preferenceRepo,
		cfg.Giveaway.ParticipantCodeLength, cfg.Giveaway.ParticipantCodeAlphabet,
	)
	entryService := service.NewEntryService(registryService, participantRepo, entryRepo, codes)
	admissionService := service.NewAdmissionService(
		telegramClient, membershipCache,
		cfg.Giveaway.MembershipCacheTTL, cfg.Giveaway.MembershipCheckTimeout,
		logger,
	)
	lotteryService := service.NewLotteryService(entryRepo, logger)
	preferenceService := service.NewPreferenceService(preferenceRepo)
	broadcastService := service.NewBroadcastService(
		preferenceRepo, telegramClient,
		cfg.Broadcast.BatchSize, cfg.Broadcast.BatchInterval, cfg.Broadcast.DeliveryTimeout,
		logger,
	)

	// 10. Initialize handlers
	authHandler := handler.NewAuthHandler(jwtManager, cfg.Auth.OperatorSecret)
	entryHandler := handler.NewEntryHandler(entryService, admissionService)
	participantHandler := handler.NewParticipantHandler(
		registryService, entryService, admissionService, preferenceService,
	)
	adminHandler := handler.NewAdminHandler(
		lotteryService, entryService, broadcastService,
		telegramClient, cfg.Giveaway.AnnounceChatID, logger,
	)

	// 11. Setup router
	router := handler.SetupRouter(cfg, logger, jwtManager, authHandler, entryHandler, participantHandler, adminHandler)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
