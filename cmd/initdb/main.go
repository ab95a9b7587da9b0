package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/pkg/logger"
)

// initdb creates the database file and schema without starting the
// server, for provisioning and reset scripts.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))

	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectDatabase(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	logger.Info().Str("db", cfg.Database.Path).Msg("database initialized")
}
