package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/auth"
	"github.com/showfolio-dev/showfolio/internal/middleware"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/internal/types"
	"github.com/showfolio-dev/showfolio/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Code     string `json:"code" binding:"required"`
}

var (
	Domain = os.Getenv("DOMAIN")

	errInvalidCode   = errors.New("invalid code")
	errUsernameTaken = errors.New("username taken")
)

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Me returns the current session's user, or null for anonymous
// callers. Never fails.
func Me(ctx *gin.Context) {
	session, err := middleware.ResolveSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	var user models.User

	if err := db.DB.First(&user, session.UserID).Error; err != nil {
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	var user models.User

	err := db.DB.Where("username = ?", body.Username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid"})
			return
		}
		logger.Error().Err(err).Msg("failed to fetch user for login")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid"})
		return
	}

	token, err := auth.CreateSession(user.ID, user.Role)

	if err != nil {
		logger.Error().Err(err).Msg("failed to create session")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "role": user.Role})
}

// Logout destroys the session row, so the cookie token can never be
// reused, then clears the cookie.
func Logout(ctx *gin.Context) {
	if session, err := middleware.ResolveSession(ctx); err == nil {
		if err := auth.DestroySession(session.ID); err != nil {
			logger.Error().Err(err).Msg("failed to destroy session")
		}
	}

	setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Register creates a friend account from a single-use invite code.
// User creation and code consumption run in one transaction: a code is
// never left used without its user.
func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	var code models.InviteCode

	err := db.DB.Where("code = ?", body.Code).First(&code).Error

	if err != nil || code.Used {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error().Err(err).Msg("failed to fetch invite code")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		return
	}

	var existing models.User

	err = db.DB.Where("username = ?", body.Username).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error().Err(err).Msg("failed to check existing username")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		logger.Error().Err(err).Msg("failed to hash password")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	name := body.Name
	if name == "" {
		name = body.Username
	}

	newUser := models.User{
		Username:     body.Username,
		PasswordHash: string(passwordHash),
		Role:         models.RoleFriend,
		Name:         &name,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUsernameTaken
			}
			return err
		}

		// The used=0 guard makes concurrent registrations with the
		// same code lose cleanly: zero rows means someone else
		// consumed it first.
		res := tx.Model(&models.InviteCode{}).
			Where("code = ? AND used = ?", body.Code, false).
			Updates(map[string]interface{}{
				"used":    true,
				"used_by": newUser.ID,
				"used_at": time.Now(),
			})

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return errInvalidCode
		}

		return nil
	})

	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "user": newUser})
	case errors.Is(err, errInvalidCode):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
	case errors.Is(err, errUsernameTaken):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username exists"})
	default:
		logger.Error().Err(err).Msg("failed to register user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
