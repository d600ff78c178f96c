package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinephile-dev/cinephile/internal/api/handler"
	"github.com/cinephile-dev/cinephile/internal/api/middleware"
	"github.com/cinephile-dev/cinephile/internal/auth"
	"github.com/cinephile-dev/cinephile/internal/config"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/cache"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/docstore"
	"github.com/cinephile-dev/cinephile/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// The store is mandatory; startup fails without it.
	store, err := docstore.NewClient(ctx, docstore.ClientConfig{
		ProjectID:       cfg.Firestore.ProjectID,
		CredentialsPath: cfg.Firestore.CredentialsPath,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}
	defer store.Close()

	// The cache is optional; a missing or unreachable cache degrades
	// every read to a store read.
	var c cache.Cache = cache.Noop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("cache unavailable, serving without it", slog.Any("error", err))
		} else {
			defer redisCache.Close()
			c = redisCache
		}
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	videoRepo := docstore.NewVideoRepository(store)
	userRepo := docstore.NewUserRepository(store, videoRepo)

	catalog := usecase.NewCachedCatalogService(
		usecase.NewCatalogService(videoRepo),
		c,
		usecase.DefaultCachedCatalogServiceConfig(),
	)
	accounts := usecase.NewAccountService(userRepo, tokens)

	r := setupRouter(logger, cfg, tokens, catalog, accounts)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	cfg *config.Config,
	tokens *auth.TokenManager,
	catalog usecase.CatalogService,
	accounts usecase.AccountService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	authHandler := handler.NewAuthHandler(accounts)
	videoHandler := handler.NewVideoHandler(catalog)
	userHandler := handler.NewUserHandler(accounts)

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", videoHandler.Create)
			r.Get("/feed", videoHandler.Feed)
			r.Get("/search/query", videoHandler.Search)
			r.Get("/trending/now", videoHandler.Trending)
			r.Get("/{video_id}", videoHandler.Get)
			r.Post("/{video_id}/view", videoHandler.TrackView)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Authenticator(tokens, accounts))
			r.Get("/profile", userHandler.Profile)
			r.Get("/watch-history", userHandler.GetHistory)
			r.Post("/watch-history", userHandler.AddHistory)
			r.Get("/favorites", userHandler.GetFavorites)
			r.Post("/favorites/{video_id}", userHandler.ToggleFavorite)
		})
	})

	return r
}
