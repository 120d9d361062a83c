package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	apphttp "github.com/jhoicas/boutique-api/internal/interfaces/http"
	"github.com/jhoicas/boutique-api/internal/testutil"
	pkgjwt "github.com/jhoicas/boutique-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testIssuer = "boutique-test"
	testExpMin = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar el principal
//   - RequireAccess para autorizar module/verb
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(f *testutil.Fixture, module entity.Module, verb entity.Verb) *fiber.App {
	access := usecase.NewAccessService(f.Store.Users(), f.Store.Roles(), nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testutil.JWTSecret, access),
		apphttp.RequireAccess(module, verb, access),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    p.RoleName,
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario indicado.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testutil.JWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAccess_OwnerAccedeAUsuarios(t *testing.T) {
	f := testutil.New(t)
	app := buildTestApp(f, entity.ModuleUsers, entity.VerbDelete)
	resp := doRequest(t, app, tokenFor(t, f.Owner.ID, entity.RoleOwner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "owner accede a cualquier módulo y verbo")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, f.Owner.ID, body["user_id"])
	assert.Equal(t, entity.RoleOwner, body["role"])
}

func TestRequireAccess_StaffLeeOrdenes(t *testing.T) {
	f := testutil.New(t)
	app := buildTestApp(f, entity.ModuleOrders, entity.VerbRead)
	resp := doRequest(t, app, tokenFor(t, f.Staff.ID, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAccess_StaffBloqueadoEnUsuarios(t *testing.T) {
	f := testutil.New(t)
	app := buildTestApp(f, entity.ModuleUsers, entity.VerbRead)
	resp := doRequest(t, app, tokenFor(t, f.Staff.ID, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireAccess_StaffSinVerboDelete(t *testing.T) {
	f := testutil.New(t)
	app := buildTestApp(f, entity.ModuleOrders, entity.VerbDelete)
	resp := doRequest(t, app, tokenFor(t, f.Staff.ID, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el módulo concedido no alcanza sin el verbo")
}

// El rol del token no cuenta: manda el rol actual del usuario.
func TestRequireAccess_IgnoraRolDelToken(t *testing.T) {
	f := testutil.New(t)
	app := buildTestApp(f, entity.ModuleRoles, entity.VerbRead)
	resp := doRequest(t, app, tokenFor(t, f.Staff.ID, entity.RoleOwner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	f := testutil.New(t)
	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	f := testutil.New(t)
	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	f := testutil.New(t)
	tok := tokenFor(t, f.Owner.ID, entity.RoleOwner)
	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead), "Token "+tok[len("Bearer "):])
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	f := testutil.New(t)
	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead),
		tokenFor(t, "00000000-0000-0000-0000-000000000099", entity.RoleOwner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CuentaDeshabilitada_Retorna403(t *testing.T) {
	f := testutil.New(t)
	users := usecase.NewUserUseCase(f.Store.Users(), f.Store.Roles(), f.Store.Orders(), f.Auth)
	_, err := users.ToggleStatus(context.Background(), f.Owner.ID, f.Staff.ID)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead), tokenFor(t, f.Staff.ID, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "ACCOUNT_DISABLED")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	f := testutil.New(t)
	tok, err := pkgjwt.Generate(testutil.JWTSecret, f.Owner.ID, entity.RoleOwner, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(f, entity.ModuleOrders, entity.VerbRead), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
