package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireboard-backend/api"
	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/logs"
)

func main() {
	cfg := config.MustLoad()
	logs.Init(logs.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.New(ctx, cfg)
	cancel()
	if err != nil {
		logs.Logger.WithError(err).Fatal("failed to initialize store")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, store),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logs.Logger.WithField("port", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logs.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Logger.WithError(err).Error("graceful shutdown failed")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logs.Logger.WithError(err).Error("store close failed")
	}
}
