package auth

import (
	"errors"

	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureInitialOwner upserts the configured owner account: an existing
// user gets a fresh password hash, the owner role and the configured
// name; a missing one is created. Running it twice with the same input
// leaves the same end state. A missing or malformed credential pair
// disables the upsert.
func EnsureInitialOwner(cfg *config.Config) error {
	username, password, ok := cfg.OwnerCredentials()
	if !ok {
		return nil
	}

	name := cfg.Owner.Name
	if name == "" {
		name = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var user models.User

	err = db.DB.Where("username = ?", username).First(&user).Error

	if err == nil {
		updates := map[string]interface{}{
			"password_hash": string(hash),
			"role":          models.RoleOwner,
			"name":          name,
		}
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		logger.Info().Str("username", username).Msg("initial owner updated")
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user = models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
		Name:         &name,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return err
	}

	logger.Info().Str("username", username).Msg("initial owner created")
	return nil
}
