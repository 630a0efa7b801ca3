package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"bikeshop/internal/config"
	"bikeshop/internal/events"
	"bikeshop/internal/logging"
	"bikeshop/internal/menu"
	"bikeshop/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "bikeshop")
	slog.SetDefault(logger)

	store, err := config.InitStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	}

	accounts := &service.Accounts{Store: store, Events: producer, Log: logger}
	fulfillment := &service.Fulfillment{Store: store, Events: producer, Log: logger}

	session := menu.NewSession(store, accounts, fulfillment, os.Stdin, os.Stdout, logger)
	session.Run(context.Background())

	_ = producer.Close()
	if err := store.Close(); err != nil {
		log.Printf("store close: %v", err)
	}
}
