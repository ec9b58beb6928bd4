package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reminders-backend/config"
	"reminders-backend/models"
	"reminders-backend/routes"
	"reminders-backend/services"
	"reminders-backend/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		utils.GetLogger().Info("No .env file found")
	}

	log := utils.GetLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if err := config.ConnectDB(cfg.DatabaseURL); err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := config.DB.AutoMigrate(
		&models.Reminder{},
		&models.DeliveryLog{},
	); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	users := services.NewHTTPUserDirectory(cfg.FrontendAddress, cfg.AuthKey)
	mailer := services.NewSMTPMailer(cfg)

	dispatcher := services.NewDispatchService(config.DB, mailer, users, cfg.CheckInterval)
	if err := dispatcher.Start(); err != nil {
		// No degraded mode: without a working transport the dispatcher has
		// no purpose.
		log.Fatal("failed to initiate transporter", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.SetupRouter(cfg, users),
	}

	go func() {
		log.Info("webserver started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("webserver failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting requests first, then let the in-flight tick finish,
	// then release the transports.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("webserver shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("dispatcher shutdown timed out", zap.Error(err))
	}
	if err := mailer.Close(); err != nil {
		log.Error("failed to close mailer", zap.Error(err))
	}
	if db, err := config.DB.DB(); err == nil {
		db.Close()
	}

	log.Info("exited")
}
