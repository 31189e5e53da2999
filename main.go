package main

import (
	"log"

	"go.uber.org/zap"

	"fcnca-dashboard/app"
	"fcnca-dashboard/config"
	"fcnca-dashboard/logging"
)

func main() {
	// Load config from environment (and .env when present)
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	application, err := app.New(cfg)
	if err != nil {
		zap.S().Fatalf("❌ %v", err)
	}
	if err := application.Start(); err != nil {
		zap.S().Fatalf("❌ %v", err)
	}
}
