package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// mintToken signs a token with a throwaway secret. The guard never verifies
// signatures, so any well-formed token decodes.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

func TestDecideAccess(t *testing.T) {
	policies := DefaultPolicies()

	studentToken := mintToken(t, jwt.MapClaims{"user_id": "u1", "role": "student"})
	teacherToken := mintToken(t, jwt.MapClaims{"user_id": "u2", "role": "teacher"})
	rolelessToken := mintToken(t, jwt.MapClaims{"user_id": "u3"})

	tests := []struct {
		name         string
		path         string
		token        string
		wantRedirect string
		wantRole     string
	}{
		{
			name:         "unguarded path passes without a token",
			path:         "/about",
			token:        "",
			wantRedirect: "",
		},
		{
			name:         "no token on dashboard redirects to sign-in",
			path:         "/dashboard",
			token:        "",
			wantRedirect: SignInPath,
		},
		{
			name:         "malformed token treated as signed out",
			path:         "/coding/editor",
			token:        "not-a-jwt",
			wantRedirect: SignInPath,
		},
		{
			name:         "student on teacher pages bounces to dashboard",
			path:         "/teacher/students",
			token:        studentToken,
			wantRedirect: DashboardPath,
			wantRole:     "student",
		},
		{
			name:     "teacher allowed on teacher pages",
			path:     "/teacher/students",
			token:    teacherToken,
			wantRole: "teacher",
		},
		{
			name:     "student allowed on coding pages",
			path:     "/coding/editor",
			token:    studentToken,
			wantRole: "student",
		},
		{
			name:     "missing role claim defaults to student",
			path:     "/dashboard",
			token:    rolelessToken,
			wantRole: "student",
		},
		{
			name:         "missing role claim still blocked from teacher pages",
			path:         "/teacher/students",
			token:        rolelessToken,
			wantRedirect: DashboardPath,
			wantRole:     "student",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DecideAccess(tt.path, tt.token, policies)
			if decision.Redirect != tt.wantRedirect {
				t.Errorf("redirect = %q, want %q", decision.Redirect, tt.wantRedirect)
			}
			if decision.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", decision.Role, tt.wantRole)
			}
		})
	}
}

func TestSessionGuardMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(SessionGuard(DefaultPolicies()))
	app.Get("/teacher/students", func(c *fiber.Ctx) error {
		return c.SendString("roster")
	})
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendString("home")
	})

	t.Run("no cookie gets a 302 to sign-in", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/dashboard", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, SignInPath, resp.Header.Get("Location"))
	})

	t.Run("student cookie on teacher page redirects to dashboard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/teacher/students", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: mintToken(t, jwt.MapClaims{"role": "student"})})
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, DashboardPath, resp.Header.Get("Location"))
	})

	t.Run("teacher cookie passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/teacher/students", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: mintToken(t, jwt.MapClaims{"role": "teacher"})})
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
