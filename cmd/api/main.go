package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/creatorlift/creatorlift-backend/api/routes"
	"github.com/creatorlift/creatorlift-backend/internal/ideas"
	"github.com/creatorlift/creatorlift-backend/internal/research"
	"github.com/creatorlift/creatorlift-backend/internal/usage"
	"github.com/creatorlift/creatorlift-backend/pkg/config"
	"github.com/creatorlift/creatorlift-backend/pkg/db"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
	"github.com/creatorlift/creatorlift-backend/pkg/metrics"
	"github.com/creatorlift/creatorlift-backend/pkg/migrate"
	"github.com/creatorlift/creatorlift-backend/pkg/redis"
	"github.com/creatorlift/creatorlift-backend/pkg/youtube"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	researchMetrics := metrics.NewResearchMetrics(registry)

	tracker, err := usage.NewService(usage.NewRepository(dbClient.DB()), cfg.Research)
	if err != nil {
		logg.Error(context.Background(), "failed to create usage tracker", err)
		os.Exit(1)
	}

	var searchClient research.SearchClient
	if cfg.YouTube.IsConfigured() {
		client, err := youtube.NewClient(context.Background(), cfg.YouTube, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create youtube client", err)
			os.Exit(1)
		}
		searchClient = client
	} else {
		logg.Warn(context.Background(), "no YouTube API key configured, research endpoints disabled")
	}

	researchService, err := research.NewService(research.ServiceParams{
		Repo:    research.NewRepository(dbClient.DB()),
		Ideas:   ideas.NewRepository(dbClient.DB()),
		Tracker: tracker,
		Client:  searchClient,
		Config:  cfg.Research,
		Logger:  logg,
		Metrics: researchMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create research service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, researchService, tracker, registry),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-done
	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
