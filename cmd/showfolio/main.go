package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/auth"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/internal/router"
	"github.com/showfolio-dev/showfolio/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))

	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Server.LogLevel)

	if err := auth.InitSessionAuth(cfg.Session.Secret, cfg.Session.ExpireHour); err != nil {
		logger.Fatalf("Failed to init session auth: %v", err)
	}

	if err := db.ConnectDatabase(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := auth.EnsureInitialOwner(cfg); err != nil {
		logger.Fatalf("Failed to ensure initial owner: %v", err)
	}

	r := router.NewRouter(cfg)

	logger.Info().Str("port", cfg.Server.Port).Str("db", cfg.Database.Path).Msg("server starting")

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
