package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/open", RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals("user_role")})
	})
	app.Delete("/admin-only", RequireAuth(), RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Post("/stock", RequireAuth(), RequireRole(model.RoleAdmin, model.RoleStockManager), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(uuid.New(), "user@example.com", "User", role)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["message"])
}

func TestRequireAuth_BadScheme(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, model.RoleStaff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, model.RoleStaff, body["role"])
}

func TestRequireRole_Forbidden(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("DELETE", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, model.RoleStockManager))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)
}

func TestRequireRole_AllowList(t *testing.T) {
	app := testApp()

	for _, role := range []string{model.RoleAdmin, model.RoleStockManager} {
		req := httptest.NewRequest("POST", "/stock", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode, "role %s should pass", role)
	}

	req := httptest.NewRequest("POST", "/stock", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, model.RoleStaff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)
}
