package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ferrybackend/internal/cache"
	"ferrybackend/internal/config"
	apphttp "ferrybackend/internal/http"
	"ferrybackend/internal/http/handlers"
	"ferrybackend/internal/repositories"
	"ferrybackend/internal/services"
	"ferrybackend/internal/utils"
	"ferrybackend/internal/worker"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(os.Getenv("LOG_FORMAT"))

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	db := config.ConnectDB(cfg.MySQL)
	defer config.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is an optimization; the service degrades to store lookups
	// without it.
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logrus.Warnf("redis unavailable, alert counts will not be cached: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	handlers.Setup(cfg, redisClient)

	sweeper := worker.NewAlertExpiryWorker(services.AlertService{
		Store: repositories.AlertRepository{DB: db},
		Counts: cache.AlertCountCache{
			Client: redisClient,
			TTL:    cfg.Alerts.CountCacheTTL,
		},
		WindowDays: cfg.Alerts.WindowDays,
	}, cfg.Alerts.SweepInterval)
	go sweeper.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           apphttp.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown incomplete: %v", err)
	}
}
