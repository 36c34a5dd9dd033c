package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devonaut-be/internal/bootstrap"
	"devonaut-be/internal/config"
	"devonaut-be/internal/dto"
	"devonaut-be/internal/model"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/server"
	"devonaut-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setupApp stands up the full stack against the configured database. Skips
// when no database is reachable so the suite can run without infrastructure.
func setupApp(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Skipf("Skipping integration test, no database: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	return db, srv.GetApp()
}

func TestRegisterLoginWhoami(t *testing.T) {
	db, app := setupApp(t)

	username := fmt.Sprintf("it_user_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Where("username = ?", username).Delete(&model.User{})
	})

	// Register
	registerBody := fmt.Sprintf(`{"username":%q,"password":"changeme123","role":"student"}`, username)
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Duplicate register is rejected with the legacy detail shape
	req = httptest.NewRequest("POST", "/auth/register", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 10000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var detail dto.DetailResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Username already registered", detail.Detail)

	// Login sets the session cookie
	loginBody := fmt.Sprintf(`{"username":%q,"password":"changeme123"}`, username)
	req = httptest.NewRequest("POST", "/auth/tu/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 10000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var login dto.LoginResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.Equal(t, "Login successful", login.Message)
	assert.NotEmpty(t, login.AccessToken)

	var sessionCookie string
	for _, c := range resp.Cookies() {
		if c.Name == serverutils.AccessTokenCookie {
			sessionCookie = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	assert.NotEmpty(t, sessionCookie)

	// Whoami with the cookie
	req = httptest.NewRequest("GET", "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: serverutils.AccessTokenCookie, Value: sessionCookie})
	resp, err = app.Test(req, 10000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "student", resp.Header.Get("X-User-Role"))

	var whoami dto.WhoamiResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&whoami))
	assert.Equal(t, username, whoami.Username)
	assert.Equal(t, "student", whoami.Role)

	// Wrong password gets the legacy error plus the challenge header
	req = httptest.NewRequest("POST", "/auth/tu/login", strings.NewReader(fmt.Sprintf(`{"username":%q,"password":"wrong-password"}`, username)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 10000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}
