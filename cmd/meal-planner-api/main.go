package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"meal-planner-api/internal/api"
	"meal-planner-api/internal/config"
	"meal-planner-api/internal/database"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/metrics"
	"meal-planner-api/internal/planner"
	"meal-planner-api/internal/recipe"
	"meal-planner-api/internal/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Named("meal-planner-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize model client", zap.Error(err))
	}
	if closer, ok := generator.(llm.Closer); ok {
		defer closer.Close()
	}

	sessions, recorder, cleanup, err := newSessionBackend(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer cleanup()

	var recipes planner.RecipeSource
	if cfg.RecipeServiceURL != "" {
		recipes = recipe.NewClient(cfg.RecipeServiceURL)
	}

	mealPlanner := planner.NewPlanner(generator, sessions, recipes, recorder, log.Named("planner"))
	router := api.NewRouter(api.NewHandler(mealPlanner, sessions, log.Named("api")), cfg.CORSOrigin)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Received shutdown signal, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("Meal planner API shut down successfully")
}

// newGenerator constructs the configured model client.
func newGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	if cfg.LLMProvider == config.ProviderGroq {
		return llm.NewGroqClient(cfg)
	}
	return llm.NewGeminiClient(ctx, cfg)
}

// newSessionBackend constructs the configured session store. Call metrics
// ride on the SQLite database, so the recorder is only available with the
// sqlite backend.
func newSessionBackend(cfg *config.Config, log *zap.Logger) (session.Store, planner.MetricsRecorder, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		return session.NewMemoryStore(cfg.SessionTTL), nil, func() {}, nil

	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return session.NewRedisStore(client, cfg.SessionTTL), nil, func() { _ = client.Close() }, nil

	default:
		db, err := database.NewDB(cfg.SessionDBPath, log)
		if err != nil {
			return nil, nil, nil, err
		}
		store := session.NewSQLiteStore(db.SQL, cfg.SessionTTL)
		return store, metrics.NewStore(db.SQL), func() { _ = db.Close() }, nil
	}
}
