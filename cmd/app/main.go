package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/config"
	"github.com/Domenick1991/hackportal/internal/bootstrap"
	"github.com/Domenick1991/hackportal/internal/logging"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := bootstrap.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect", zap.Error(err))
	}
	defer infra.Close()

	hackService := infra.HackService(cfg, logger)
	transportationService := infra.TransportationService(cfg, logger)

	if err := bootstrap.Run(ctx, cfg, logger, hackService, transportationService); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
