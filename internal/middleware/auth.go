package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/internal/auth"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/internal/types"
)

// SessionSnapshot is the immutable per-request view of the caller's
// session, set once by RequireLogin and read by handlers.
type SessionSnapshot struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
}

// RequireLogin rejects requests without a valid session cookie and
// stores the session snapshot in the request context.
func RequireLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, err := ResolveSession(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx.Set(types.ContextSessionKey, SessionSnapshot{
			SessionID: session.ID,
			UserID:    session.UserID,
			Role:      session.Role,
		})
		ctx.Next()
	}
}

// RequireOwner passes only sessions whose snapshotted role is owner.
// Must run after RequireLogin.
func RequireOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, err := CurrentSession(ctx)

		if err != nil || session.Role != models.RoleOwner {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		ctx.Next()
	}
}

// ResolveSession reads and verifies the session cookie without
// aborting, for endpoints that serve both anonymous and logged-in
// callers.
func ResolveSession(ctx *gin.Context) (*models.Session, error) {
	cookie, err := ctx.Cookie(types.SessionCookieName)
	if err != nil || cookie == "" {
		return nil, fmt.Errorf("no session cookie")
	}

	return auth.VerifySession(cookie)
}

// CurrentSession returns the snapshot stored by RequireLogin.
func CurrentSession(ctx *gin.Context) (SessionSnapshot, error) {
	value, exists := ctx.Get(types.ContextSessionKey)

	if !exists {
		return SessionSnapshot{}, fmt.Errorf("no session in context")
	}

	snapshot, ok := value.(SessionSnapshot)

	if !ok {
		return SessionSnapshot{}, fmt.Errorf("invalid session type in context")
	}

	return snapshot, nil
}
