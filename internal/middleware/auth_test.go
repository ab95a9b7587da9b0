package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/internal/types"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return ctx, w
}

func TestCurrentSessionMissing(t *testing.T) {
	ctx, _ := testContext()

	if _, err := CurrentSession(ctx); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestCurrentSessionWrongType(t *testing.T) {
	ctx, _ := testContext()
	ctx.Set(types.ContextSessionKey, "not a snapshot")

	if _, err := CurrentSession(ctx); err == nil {
		t.Error("expected error for wrong type")
	}
}

func TestCurrentSessionSnapshot(t *testing.T) {
	ctx, _ := testContext()
	ctx.Set(types.ContextSessionKey, SessionSnapshot{
		SessionID: "sid",
		UserID:    7,
		Role:      models.RoleOwner,
	})

	snapshot, err := CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if snapshot.UserID != 7 || snapshot.Role != models.RoleOwner {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestRequireOwnerRejectsFriend(t *testing.T) {
	ctx, w := testContext()
	ctx.Set(types.ContextSessionKey, SessionSnapshot{UserID: 7, Role: models.RoleFriend})

	RequireOwner()(ctx)

	if !ctx.IsAborted() {
		t.Error("friend session should abort")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403", w.Code)
	}
}

func TestRequireOwnerRejectsMissingSession(t *testing.T) {
	ctx, w := testContext()

	RequireOwner()(ctx)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403", w.Code)
	}
}

func TestRequireOwnerPassesOwner(t *testing.T) {
	ctx, w := testContext()
	ctx.Set(types.ContextSessionKey, SessionSnapshot{UserID: 1, Role: models.RoleOwner})

	RequireOwner()(ctx)

	if ctx.IsAborted() {
		t.Error("owner session should pass")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}
}

func TestRequireLoginRejectsMissingCookie(t *testing.T) {
	ctx, w := testContext()

	RequireLogin()(ctx)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401", w.Code)
	}
}
