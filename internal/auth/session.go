package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/models"
)

var (
	sessionSecret string
	sessionTTL    = time.Hour * 168
)

// InitSessionAuth sets the signing secret and lifetime for session
// cookies. Must be called before any session is issued or verified.
func InitSessionAuth(secret string, expireHours int) error {
	if secret == "" {
		return fmt.Errorf("session secret is not set")
	}
	sessionSecret = secret
	if expireHours > 0 {
		sessionTTL = time.Duration(expireHours) * time.Hour
	}
	return nil
}

// CreateSession persists a session row for the user and returns the
// signed cookie token referencing it. The role is snapshotted at
// login time.
func CreateSession(userID uint, role string) (string, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	if err := db.DB.Create(&session).Error; err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid":     session.ID,
		"user_id": session.UserID,
		"role":    session.Role,
		"exp":     session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sessionSecret))
}

// VerifySession validates the cookie token and resolves it to a live
// session row. A destroyed or expired session fails verification even
// when the token signature is still valid.
func VerifySession(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(sessionSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, fmt.Errorf("invalid session id in token claims")
	}

	var session models.Session

	if err := db.DB.Where("id = ?", sid).First(&session).Error; err != nil {
		return nil, fmt.Errorf("session not found")
	}

	if time.Now().After(session.ExpiresAt) {
		db.DB.Delete(&models.Session{}, "id = ?", session.ID)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// DestroySession removes the session row. The matching cookie token
// can never authenticate again.
func DestroySession(sessionID string) error {
	return db.DB.Delete(&models.Session{}, "id = ?", sessionID).Error
}
