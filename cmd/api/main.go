package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcade/internal/api"
	"arcade/internal/api/handlers"
	"arcade/internal/auth"
	"arcade/internal/config"
	"arcade/internal/db"
	"arcade/internal/logger"
	"arcade/internal/metrics"
	"arcade/internal/middleware"
	"arcade/internal/repository/postgres"
	"arcade/internal/services"
	"arcade/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Error("migrations", "err", err)
		os.Exit(1)
	}
	if cfg.SeedDemo {
		if err := db.SeedDemo(ctx, pool); err != nil {
			log.Error("seed", "err", err)
			os.Exit(1)
		}
		log.Info("demo rows seeded")
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.Workers)
	defer wp.Stop()

	postSvc := services.NewPostService(repos.Posts, cfg.CounterMode)
	playerSvc := services.NewPlayerService(repos.Players, repos.Upgrades, wp, cfg)

	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error("hash admin password", "err", err)
		os.Exit(1)
	}
	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, 15*time.Minute, 7*24*time.Hour)

	r := api.NewRouter(api.RouterDeps{
		Cfg:       cfg,
		PostSvc:   postSvc,
		PlayerSvc: playerSvc,
		Auth:      handlers.NewAuthHandler(tm, cfg.AdminEmail, adminHash),
		AuthMW:    middleware.NewAuthMiddleware(tm),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "counter_mode", string(cfg.CounterMode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
