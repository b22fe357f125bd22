package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
)

// LocalIdentity key de la identidad resuelta en c.Locals.
const LocalIdentity = "identity"

// identityResolver es el contrato mínimo que necesita el middleware.
// Lo implementa *auth.IdentityResolver; la interfaz facilita los tests.
type identityResolver interface {
	Resolve(ctx context.Context, token string) (entity.Identity, error)
}

// AuthMiddleware valida el Bearer Token y resuelve la identidad re-consultando
// la cuenta (cuentas desactivadas quedan fuera de inmediato, sin esperar a que
// expire el token). Deja la Identity en c.Locals.
func AuthMiddleware(resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identity, err := resolver.Resolve(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o cuenta inactiva"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar la identidad, intente más tarde"})
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// RequirePartner autoriza solo a partners. Debe usarse DESPUÉS de AuthMiddleware.
func RequirePartner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no resuelta"})
		}
		if identity.Role != entity.RolePartner {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso permitido solo a partners"})
		}
		return c.Next()
	}
}

// GetIdentity devuelve la Identity del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) (entity.Identity, bool) {
	identity, ok := c.Locals(LocalIdentity).(entity.Identity)
	return identity, ok
}
