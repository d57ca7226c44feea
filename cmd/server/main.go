package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"gisteam.backend/internal/app"
	"gisteam.backend/internal/config"
	"gisteam.backend/internal/infrastructure/jobs"
	"gisteam.backend/internal/interfaces/http/handlers"
	"gisteam.backend/internal/interfaces/http/middleware"
	"gisteam.backend/pkg/jwt"
	"gisteam.backend/pkg/logger"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	newContainer = app.New
	runServer    = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	waitSignal   = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c, err := newContainer(ctx, cfg, registry)
	if err != nil {
		return fmt.Errorf("failed to open object store: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn(context.Background(), "Failed to close datasources", zap.Error(err))
		}
	}()

	var reconcileJob *jobs.ReconcileJob
	if cfg.Reconcile.Enabled {
		reconcileJob = jobs.NewReconcileJob(c.ReconcileUsecase, cfg.Reconcile.Interval)
		go reconcileJob.Start(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerRoutes(r, routeDeps{
		healthHandler:   handlers.NewHealthHandler(storeProbe(c)),
		adminHandler:    handlers.NewAdminHandler(c.ReconcileUsecase, c.AuditUsecase, c.Messages),
		adminMiddleware: middleware.AdminAuthMiddleware(cfg.Security.AdminToken, operatorTokens(cfg)),
		metrics:         metricsHandler(registry),
	})

	go func() {
		select {
		case <-waitSignal():
			logger.Info(context.Background(), "Shutting down server")
			if reconcileJob != nil {
				reconcileJob.Stop()
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info(ctx, "Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Store.Backend),
		zap.Bool("reconcile_job", cfg.Reconcile.Enabled),
	)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// operatorTokens is nil unless a signing secret is configured.
func operatorTokens(cfg *config.Config) *jwt.OperatorTokenService {
	if cfg.Security.OperatorTokenSecret == "" {
		return nil
	}
	return jwt.NewOperatorTokenService(cfg.Security.OperatorTokenSecret)
}

// storeProbe lists the accounts collection without decoding anything.
func storeProbe(c *app.Container) handlers.Probe {
	return func(ctx context.Context) error {
		_, err := c.Store().List(ctx, "accounts/")
		return err
	}
}
