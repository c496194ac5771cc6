package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	"github.com/Despicable-at/robot-delivery-backend/internal/mailer"
	"github.com/Despicable-at/robot-delivery-backend/internal/routes"
	"github.com/Despicable-at/robot-delivery-backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.Auth.AccessSecret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}
	if cfg.Auth.RefreshSecret == "" {
		logger.Fatal("JWT refresh secret is missing. Please set JWT_REFRESH_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	mail, err := mailer.NewSMTPMailer(&cfg.SMTP)
	if err != nil {
		logger.Fatal("Failed to configure mail client", zap.Error(err))
	}

	router, services := routes.SetupRoutes(cfg, db, mail)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	go services.Auth.StartCleanupJob(jobCtx, cfg.Cleanup.Interval)

	var bridge *telemetry.Bridge
	if cfg.MQTT.Broker != "" {
		bridge, err = telemetry.NewBridge(&cfg.MQTT, services.Robot)
		if err != nil {
			logger.Fatal("Failed to create telemetry bridge", zap.Error(err))
		}
		if err := bridge.Start(jobCtx); err != nil {
			logger.Fatal("Failed to start telemetry bridge", zap.Error(err))
		}
		defer bridge.Stop()
	}

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	cancelJobs()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
