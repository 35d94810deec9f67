package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/cache"
	"github.com/Dosada05/sinuca-cup/config"
	"github.com/Dosada05/sinuca-cup/db"
	"github.com/Dosada05/sinuca-cup/handlers"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/Dosada05/sinuca-cup/routes"
	"github.com/Dosada05/sinuca-cup/services"
	"github.com/Dosada05/sinuca-cup/storage"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var memory, migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{MemoryStore: memory})
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return serve(cmd.Context(), cfg, memory, migrate)
		},
	}

	cmd.Flags().BoolVar(&memory, "memory", false, "keep all data in memory instead of PostgreSQL")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func serve(parent context.Context, cfg *config.Config, memory, migrate bool) error {
	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("memory_store", memory))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище
	var store repositories.Store
	if memory {
		store = repositories.NewMemoryStore()
		logger.Warn("using in-memory store; data is lost on restart")
	} else {
		dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultConnectOptions(), logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		logger.Info("database connection established")

		if migrate {
			if err := db.Migrate(dbConn, logger); err != nil {
				return err
			}
		}
		store = repositories.NewPostgresStore(dbConn, logger)
	}

	// Кеш рейтинга (опционально)
	rankingCache := cache.NewNoopRankingCache()
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisRankingCache(cfg.RedisURL, cfg.RankingCacheTTL, logger)
		if err != nil {
			logger.Warn("ranking cache disabled", slog.Any("error", err))
		} else {
			rankingCache = redisCache
		}
	}
	defer func() {
		if err := rankingCache.Close(); err != nil {
			logger.Error("failed to close ranking cache", slog.Any("error", err))
		}
	}()

	// Загрузка фото в Cloudflare R2 (опционально)
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		r2, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		uploader = r2
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 settings incomplete; photo uploads are disabled")
	}

	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty; admin login is disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	playerService := services.NewPlayerService(store, uploader, rankingCache, logger)
	editionService := services.NewEditionService(store, wsHub, logger)
	pairingService := services.NewPairingService(store, wsHub, logger)
	bracketService := services.NewBracketService(store, brackets.NewSingleEliminationGenerator(), wsHub, logger)
	matchService := services.NewMatchService(store, wsHub, logger)
	correctionService := services.NewCorrectionService(store, wsHub, logger)
	settlementService := services.NewSettlementService(store, rankingCache, wsHub, logger)
	authService := services.NewAuthService(cfg.AdminPasswordHash, logger)
	logger.Info("services initialized")

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:     handlers.NewPlayerHandler(playerService),
		Edition:    handlers.NewEditionHandler(editionService),
		Pairing:    handlers.NewPairingHandler(pairingService),
		Match:      handlers.NewMatchHandler(bracketService, matchService, correctionService),
		Settlement: handlers.NewSettlementHandler(settlementService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, editionService, cfg.CORSAllowedOrigins, logger),
	}, routes.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
	}

	logger.Info("application exited")
	return nil
}
