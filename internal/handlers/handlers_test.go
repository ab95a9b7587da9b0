package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/auth"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/internal/router"
	"golang.org/x/crypto/bcrypt"
)

var testDBCounter int64

// setupRouter wires a fresh in-memory database and a full router for
// one test.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", n)

	if err := db.ConnectDatabase(dsn); err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}
	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("MigrateDatabase: %v", err)
	}

	if err := auth.InitSessionAuth("test-secret", 1); err != nil {
		t.Fatalf("InitSessionAuth: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Server.Mode = gin.TestMode

	return router.NewRouter(cfg)
}

func performRequest(r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var parsed map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse response body %q: %v", w.Body.String(), err)
	}
	return parsed
}

func createUser(t *testing.T, username, password, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	name := username
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Name:         &name,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// login returns the session cookie for the user.
func login(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("login of %s failed: status %d body %s", username, w.Code, w.Body.String())
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}

	t.Fatalf("no session cookie in login response")
	return nil
}

func loginOwner(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	createUser(t, "admin", "adminpass", models.RoleOwner)
	return login(t, r, "admin", "adminpass")
}
