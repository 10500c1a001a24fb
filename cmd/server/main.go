package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/logger"
	"github.com/hongminglow/filmdesk/internal/server"
	"github.com/hongminglow/filmdesk/internal/storage"
	"github.com/hongminglow/filmdesk/internal/storage/postgres"
	"github.com/hongminglow/filmdesk/internal/storage/sqlite"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Get("info").Fatalw("load config", "error", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("init database", "error", err)
	}
	defer store.Close()

	srv := server.New(cfg, store, log)

	go func() {
		log.Infow("filmdesk backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Errorw("graceful shutdown error", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (storage.Store, error) {
	if cfg.UsePostgres() {
		log.Infow("using postgres store")
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	}
	log.Infow("using sqlite store", "path", cfg.SQLitePath)
	return sqlite.Open(ctx, cfg.SQLitePath)
}
