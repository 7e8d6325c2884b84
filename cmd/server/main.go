package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/NikoCousin/ai-index-market/internal/config"
	"github.com/NikoCousin/ai-index-market/internal/db"
	"github.com/NikoCousin/ai-index-market/internal/handler"
	"github.com/NikoCousin/ai-index-market/internal/middleware"
	"github.com/NikoCousin/ai-index-market/internal/repository"
	"github.com/NikoCousin/ai-index-market/internal/router"
	"github.com/NikoCousin/ai-index-market/internal/seed"
	"github.com/NikoCousin/ai-index-market/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "ai-index-market")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The seed catalog is mandatory; without it the index has no floor to
	// fall back on.
	catalog, err := seed.Load(cfg.SeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("seed catalog load failed")
	}
	log.Info().Int("tools", len(catalog.Tools)).Int("categories", len(catalog.Categories)).Msg("seed catalog loaded")

	// The database is optional; listings degrade to the seed catalog when
	// it is unreachable.
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("starting without live store, serving seed catalog only")
		pool = nil
	}
	if pool != nil {
		defer pool.Close()
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	toolRepo := repository.NewToolRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)

	toolSvc := service.NewToolService(toolRepo, voteRepo, catalog, cache)
	voteSvc := service.NewVoteService(voteRepo, catalog, cache)

	if pool != nil {
		worker := service.NewRankWorker(pool, cache)
		go worker.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      "AI Index Market API",
		ServerHeader: "ai-index-market",
	})

	router.Setup(app, &router.Handlers{
		Tool:   handler.NewToolHandler(toolSvc),
		Vote:   handler.NewVoteHandler(voteSvc, cfg.IPSalt),
		Stats:  handler.NewStatsHandler(toolSvc),
		Health: handler.NewHealthHandler(pool, cache.Client(), catalog),
	}, cfg.CORSOrigins)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
