package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/config"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/backup"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/logger"
	trackerhttp "github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/http"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/seed"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/store"
)

const serviceName = "qatrack-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Must(cfg.App.Environment, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	log.Info("Starting "+serviceName+"...",
		zap.String("env", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx := context.Background()

	data, err := seed.Build(seed.Options{File: cfg.Seed.File, DemoProgress: cfg.Seed.DemoProgress})
	if err != nil {
		log.Fatal("Failed to build seed data", zap.Error(err))
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	st := store.New(ctx, storage, data, store.WithLogger(log))

	passwords, err := auth.SchemeFor(cfg.Auth.PasswordScheme)
	if err != nil {
		log.Fatal("Invalid password scheme", zap.Error(err))
	}
	svc := service.New(st, passwords, service.WithLogger(log))

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("JWT_SECRET not set; using a random secret, sessions end on restart")
	}
	issuer := auth.NewTokenIssuer(secret, cfg.Auth.JWTTTL)

	limiter := middleware.RateLimit(middleware.PerMinute(cfg.Server.LoginRatePerMin))
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         log,
		Storage:     storage.Pinger,
		Tracker:     trackerhttp.New(svc, issuer, log, limiter),
	})

	var backups *backup.Scheduler
	if cfg.Backup.Schedule != "" {
		backups = backup.NewScheduler(st, cfg.Backup.Dir, log)
		if err := backups.Start(cfg.Backup.Schedule); err != nil {
			log.Fatal("Failed to start backup scheduler", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down " + serviceName + " gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if backups != nil {
		backups.Stop(shutdownCtx)
	}

	log.Info(serviceName + " shutdown complete")
}
