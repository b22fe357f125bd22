package auth

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
	"github.com/jhoicas/rescate-api/pkg/jwt"
)

// IdentityResolver reconstruye la identidad del caller a partir de un bearer token.
// No confía en los claims: re-consulta la cuenta en cada request, así una
// desactivación surte efecto de inmediato sin esperar a que expire el token.
type IdentityResolver struct {
	partnerRepo  repository.PartnerRepository
	customerRepo repository.CustomerRepository
	jwtSecret    string
}

// NewIdentityResolver construye el resolver.
func NewIdentityResolver(partnerRepo repository.PartnerRepository, customerRepo repository.CustomerRepository, jwtSecret string) *IdentityResolver {
	return &IdentityResolver{partnerRepo: partnerRepo, customerRepo: customerRepo, jwtSecret: jwtSecret}
}

// Resolve verifica el token y re-consulta la cuenta subyacente.
// Retorna ErrUnauthorized si el token es inválido/expirado, si la cuenta ya no
// existe o si está inactiva.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (entity.Identity, error) {
	subject, role, err := jwt.Parse(r.jwtSecret, token)
	if err != nil {
		return entity.Identity{}, domain.ErrUnauthorized
	}

	var principal entity.Principal
	var email string
	switch role {
	case entity.RolePartner:
		partner, err := r.partnerRepo.FindByLoginKey(ctx, subject)
		if err != nil {
			return entity.Identity{}, err
		}
		if partner == nil {
			return entity.Identity{}, domain.ErrUnauthorized
		}
		principal, email = partner, partner.Email
	case entity.RoleCustomer:
		customer, err := r.customerRepo.GetByEmail(ctx, subject)
		if err != nil {
			return entity.Identity{}, err
		}
		if customer == nil {
			return entity.Identity{}, domain.ErrUnauthorized
		}
		principal, email = customer, customer.Email
	default:
		return entity.Identity{}, domain.ErrUnauthorized
	}

	if !principal.Active() {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	return entity.Identity{Role: principal.Role(), ID: principal.PrincipalID(), Email: email}, nil
}

// RequireRole valida que la identidad tenga el rol esperado.
func RequireRole(identity entity.Identity, expected string) error {
	if identity.Role != expected {
		return domain.ErrForbidden
	}
	return nil
}
