package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/config"
	"github.com/Domenick1991/hackportal/internal/kafka"
	"github.com/Domenick1991/hackportal/internal/logging"
	"github.com/Domenick1991/hackportal/internal/notify"
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

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.EventsTopic == "" {
		logger.Fatal("Worker needs kafka.brokers and kafka.events_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier(cfg.Admin.NotifyEmail, logger)

	logger.Info("Worker started", zap.String("topic", cfg.Kafka.EventsTopic), zap.String("group_id", cfg.Kafka.GroupID))

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeEvent(msg)
		if err != nil {
			logger.Warn("Skipping undecodable event", zap.Error(err))
			return nil
		}
		return notifier.Send(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", zap.Error(err))
		return
	}
	logger.Info("Worker stopped")
}
