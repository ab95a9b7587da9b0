package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/showfolio-dev/showfolio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the sqlite database at path, creating the
// parent directory for plain file paths. Foreign keys are switched on
// so membership rows die with their project or user, and
// TranslateError lets handlers match unique violations via
// gorm.ErrDuplicatedKey.
func ConnectDatabase(path string) error {
	dsn := path

	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	} else {
		dsn += "&_foreign_keys=on"
	}

	var err error

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	return nil
}

func MigrateDatabase() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.InviteCode{},
		&models.Session{},
	)
}
