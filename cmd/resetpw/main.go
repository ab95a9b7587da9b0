package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// resetpw overwrites a user's password hash from the command line, for
// recovering a locked-out account without touching the database by
// hand.
func main() {
	username := flag.String("username", "", "username to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *username == "" || *password == "" {
		logger.Fatalf("Usage: resetpw -username <name> -password <password>")
	}

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

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)

	if err != nil {
		logger.Fatalf("Failed to hash password: %v", err)
	}

	res := db.DB.Model(&models.User{}).
		Where("username = ?", *username).
		Update("password_hash", string(hash))

	if res.Error != nil {
		logger.Fatalf("Failed to update password: %v", res.Error)
	}

	if res.RowsAffected == 0 {
		logger.Fatalf("No user updated (username not found): %s", *username)
	}

	logger.Info().Str("username", *username).Msg("password updated")
}
