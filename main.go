package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chessroom/internal/config"
	"chessroom/internal/game"
	"chessroom/internal/handlers"
	"chessroom/internal/logging"
	"chessroom/internal/storage"
	"chessroom/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(conf.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	var store *storage.Store
	if conf.Postgres.DSN != "" {
		db, err := storage.New(conf.Postgres.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", zap.Error(err))
		}
		store = storage.NewStore(db)
	} else {
		logger.Info("no postgres dsn configured, game archive disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := game.NewRegistry()
	hub := ws.NewHub(logger, registry, store)
	go hub.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))

	h := handlers.NewHandler(logger, hub, store)
	h.Register(router)

	srv := &http.Server{
		Addr:    ":" + conf.HTTPPort,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("chessroom listening", zap.String("port", conf.HTTPPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
