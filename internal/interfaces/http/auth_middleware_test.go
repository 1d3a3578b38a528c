package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Warehousing-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Warehousing-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "warehousing-api-test"
	testExpMin    = 60
)

// buildTestApp aplicación Fiber mínima con AuthMiddleware, el guardia indicado y un handler
// que devuelve 200 si pasa los middlewares.
func buildTestApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		guard,
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func token(t *testing.T, claims pkgjwt.Claims) string {
	t.Helper()
	if claims.UserID == "" {
		claims.UserID = testUserID
	}
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, claims)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

func allPermissions() []string {
	codes := make([]string, 0, len(entity.PermissionCatalog))
	for _, p := range entity.PermissionCatalog {
		codes = append(codes, p.Code)
	}
	return codes
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission / RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermisoPasa(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(entity.PermViewInventory))
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{Permissions: []string{entity.PermViewInventory}}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_AlgunoDeVariosPasa(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(entity.PermManageTransfers, entity.PermApproveTransfers))
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{Permissions: []string{entity.PermApproveTransfers}}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinPermisoRetorna403(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(entity.PermAdjustInventory))
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{Permissions: []string{entity.PermViewInventory}}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), entity.PermAdjustInventory)
}

func TestRequirePermission_AdminSiemprePasa(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(entity.PermApproveOrders))
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{IsAdmin: true}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_NoAdminRetorna403(t *testing.T) {
	app := buildTestApp(apphttp.RequireAdmin())
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{Permissions: allPermissions()}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_AdminPasa(t *testing.T) {
	app := buildTestApp(apphttp.RequireAdmin())
	resp := doRequest(t, app, "/protected", token(t, pkgjwt.Claims{IsAdmin: true}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeaderRetorna401(t *testing.T) {
	app := buildTestApp(passThrough)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(passThrough)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpiradoRetorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, -1, pkgjwt.Claims{UserID: testUserID})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(passThrough), "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaActorEnContexto(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		actor, _ := ports.ActorFrom(c.UserContext())
		return c.JSON(fiber.Map{
			"user_id":   actor.UserID,
			"username":  actor.Username,
			"scoped":    actor.Scoped(),
			"can_view":  actor.Can(entity.PermViewInventory),
			"can_audit": actor.Can(entity.PermViewActivityLogs),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", token(t, pkgjwt.Claims{
		Username:    "bodega1",
		Permissions: []string{entity.PermViewInventory},
		CategoryIDs: []string{"00000000-0000-0000-0000-0000000000c1"},
	}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "bodega1", body["username"])
	assert.Equal(t, true, body["scoped"])
	assert.Equal(t, true, body["can_view"])
	assert.Equal(t, false, body["can_audit"])
}
