package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	apphttp "github.com/jhoicas/rescate-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/rescate-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "rescate-api-test"
	testExpMin    = 60
)

// stubResolver implementa el contrato del middleware sin tocar la base de datos.
type stubResolver struct {
	identity entity.Identity
	err      error
}

func (s stubResolver) Resolve(_ context.Context, _ string) (entity.Identity, error) {
	return s.identity, s.err
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware con el resolver indicado
//   - RequirePartner para autorizar solo partners
//   - Un handler dummy que devuelve la identidad resuelta si pasa los middlewares
func buildTestApp(resolver stubResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(resolver),
		apphttp.RequirePartner(),
		func(c *fiber.Ctx) error {
			identity, _ := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{
				"ok":   true,
				"id":   identity.ID,
				"role": identity.Role,
			})
		},
	)
	return app
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware + RequirePartner
// ──────────────────────────────────────────────────────────────────────────────

// Partner activo con token válido → debe pasar (HTTP 200) con su identidad.
func TestAuthMiddleware_PartnerAccede(t *testing.T) {
	app := buildTestApp(stubResolver{identity: entity.Identity{Role: entity.RolePartner, ID: 7, Email: "espiga@demo.local"}})
	resp := doRequest(t, app, "Bearer token-cualquiera")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"partner autenticado debe poder acceder a ruta de partner")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(7), body["id"], "la identidad debe venir de c.Locals")
	assert.Equal(t, "partner", body["role"])
}

// Cliente autenticado en ruta de partner → HTTP 403 FORBIDDEN, no 401.
func TestRequirePartner_ClienteBloqueado(t *testing.T) {
	app := buildTestApp(stubResolver{identity: entity.Identity{Role: entity.RoleCustomer, ID: 3}})
	resp := doRequest(t, app, "Bearer token-cualquiera")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"cliente no debe poder acceder a rutas de partner")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(stubResolver{})
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Header sin esquema Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_EsquemaIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(stubResolver{})
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Resolver rechaza el token (inválido, expirado o cuenta inactiva) → HTTP 401.
func TestAuthMiddleware_TokenRechazado_Retorna401(t *testing.T) {
	app := buildTestApp(stubResolver{err: domain.ErrUnauthorized})
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Error de infraestructura al resolver (DB caída) → HTTP 503, no 401:
// no se debe confundir un fallo transitorio con credenciales malas.
func TestAuthMiddleware_ErrorDeInfra_Retorna503(t *testing.T) {
	app := buildTestApp(stubResolver{err: errors.New("conexión rechazada")})
	resp := doRequest(t, app, "Bearer token-cualquiera")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AUTH_CHECK_FAILED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "laespiga", "partner", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "laespiga", subject)
	assert.Equal(t, "partner", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, "laespiga", "partner", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "laespiga", "partner", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_TokenSinRol_RetornaError(t *testing.T) {
	// Un token legacy sin claim de rol no identifica a nadie.
	tok, err := pkgjwt.Generate(testJWTSecret, "laespiga", "", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token sin rol debe retornar error")
}
