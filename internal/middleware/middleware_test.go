package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/store"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/utils"
)

const secret = "test-secret"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func do(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestVerifyToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", VerifyToken(secret), func(c *fiber.Ctx) error {
		return c.SendString(Email(c))
	})

	valid, _ := utils.SignJWT(secret, "ayu@test.com", time.Hour)
	expired, _ := utils.SignJWT(secret, "ayu@test.com", -time.Minute)
	foreign, _ := utils.SignJWT("other-secret", "ayu@test.com", time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"expired", "Bearer " + expired, http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
		{"malformed", "Bearer not.a.token", http.StatusForbidden},
		{"scheme only", "Bearer", http.StatusForbidden},
		{"no scheme", valid, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, tt.header)
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}

	resp := do(t, app, "Bearer "+valid)
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ayu@test.com" {
		t.Errorf("claims not attached, body %q", body)
	}
}

type fakeRoles map[string]models.Role

func (f fakeRoles) RoleOf(_ context.Context, email string) (models.Role, error) {
	if email == "broken@test.com" {
		return "", errors.New("db down")
	}
	r, ok := f[email]
	if !ok {
		return "", store.ErrNotFound
	}
	return r, nil
}

func TestRequireRoles(t *testing.T) {
	roles := fakeRoles{
		"admin@test.com": models.RoleAdmin,
		"guide@test.com": models.RoleGuide,
	}
	app := fiber.New()
	app.Get("/", VerifyToken(secret), RequireRoles(roles, quietLogger(), models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		email string
		want  int
	}{
		{"admin@test.com", http.StatusOK},
		{"guide@test.com", http.StatusForbidden},
		{"unknown@test.com", http.StatusForbidden},
		{"broken@test.com", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			tok, _ := utils.SignJWT(secret, tt.email, time.Hour)
			resp := do(t, app, "Bearer "+tok)
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestRequireRolesWithoutToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireRoles(fakeRoles{}, quietLogger(), models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	if resp := do(t, app, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(0.001, 3)
	defer rl.Close()

	app := fiber.New()
	app.Get("/", RateLimit(rl), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		if resp := do(t, app, ""); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
	if resp := do(t, app, ""); resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", resp.StatusCode)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Close()

	rl.get("10.0.0.1")
	rl.mu.Lock()
	rl.clients["10.0.0.1"].seen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()
	rl.get("10.0.0.2")

	rl.sweep(3 * time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Error("stale client not swept")
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("fresh client swept")
	}
}
