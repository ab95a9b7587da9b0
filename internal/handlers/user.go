package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/middleware"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Password string  `json:"password"`
}

// PublicProfile omits the role; it is nobody's business which
// visitors hold which rights.
type PublicProfile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      *string   `json:"name"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type UserPickerRow struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
}

type AdminUserRow struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GetSelf returns the caller's own record, role included.
func GetSelf(ctx *gin.Context) {
	session, err := middleware.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, session.UserID).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateSelf overwrites name and bio with the provided values (absent
// means null) and re-hashes the password when one is supplied.
func UpdateSelf(ctx *gin.Context) {
	session, err := middleware.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	updates := map[string]interface{}{
		"name": body.Name,
		"bio":  body.Bio,
	}

	if body.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error().Err(err).Msg("failed to hash password")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		updates["password_hash"] = string(passwordHash)
	}

	err = db.DB.Model(&models.User{}).Where("id = ?", session.UserID).Updates(updates).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to update profile")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetPublicProfile returns a user's reduced record plus the published
// projects they are a member of.
func GetPublicProfile(ctx *gin.Context) {
	var user models.User

	err := db.DB.Where("username = ?", ctx.Param("username")).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error().Err(err).Msg("failed to fetch user")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var projects []ProjectSummary

	err = db.DB.Table("projects p").
		Select("p.id, p.title, p.slug, p.description").
		Joins("JOIN project_members pm ON p.id = pm.project_id").
		Where("pm.user_id = ? AND p.published = ?", user.ID, true).
		Scan(&projects).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch user projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if projects == nil {
		projects = []ProjectSummary{}
	}

	profile := PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}

	ctx.JSON(http.StatusOK, gin.H{"user": profile, "projects": projects})
}

// ListUsers feeds the membership-assignment picker.
func ListUsers(ctx *gin.Context) {
	var users []UserPickerRow

	err := db.DB.Model(&models.User{}).
		Select("id, username, name").
		Order("username").
		Scan(&users).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to list users")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if users == nil {
		users = []UserPickerRow{}
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

func AdminListUsers(ctx *gin.Context) {
	var users []AdminUserRow

	err := db.DB.Model(&models.User{}).
		Select("id, username, role, name, created_at").
		Order("created_at DESC").
		Scan(&users).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to list users")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if users == nil {
		users = []AdminUserRow{}
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}
