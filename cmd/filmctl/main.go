package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/filmdesk/internal/api"
	"github.com/hongminglow/filmdesk/internal/cli"
	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/logger"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv(api.ConfigEnv), "path to filmdesk.yaml")
	flag.Parse()
	if err := os.Setenv(api.ConfigEnv, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "filmctl: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filmctl: %v\n", err)
		os.Exit(1)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	client, err := api.Default()
	if err != nil {
		log.Fatalw("init api client", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debugw("connecting", "base_url", client.BaseURL())
	app := cli.NewApp(client, cfg.SessionTTL, os.Stdin, os.Stdout, log)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Errorw("session ended", "error", err)
	}
}
