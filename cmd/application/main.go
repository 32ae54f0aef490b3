package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"hkcatalog_api/config"
	"hkcatalog_api/internal/catalog/app"
	"hkcatalog_api/pkg/dbconnect/postgres"
	"hkcatalog_api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg := &config.AppConfig{
		Server:   config.GetServerConfig(),
		Postgres: config.GetPostgresConfig(),
	}
	if path := os.Getenv("CATALOG_CONFIG"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
	}

	zapLogger := logger.GetLogger(cfg.Server.Environment)
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connector := postgres.NewPgConnector(cfg.Postgres)
	server := app.NewCatalogServer(connector, cfg, zapLogger)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("Catalog server stopped: %v", err)
	}
}
