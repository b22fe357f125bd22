package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
	"github.com/jhoicas/rescate-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login multi-rol y registro de clientes.
type AuthUseCase struct {
	partnerRepo  repository.PartnerRepository
	customerRepo repository.CustomerRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(partnerRepo repository.PartnerRepository, customerRepo repository.CustomerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{partnerRepo: partnerRepo, customerRepo: customerRepo, jwtCfg: jwtCfg}
}

// Login resuelve identificador+password a un token con rol.
// Sin role hint se intenta primero como partner y después como cliente.
// Cualquier fallo de verificación retorna ErrInvalidCredentials, nunca otro error,
// para no filtrar qué paso falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	identifier := strings.TrimSpace(in.EmailOrUsername)
	if identifier == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.Role == "" || in.Role == entity.RolePartner {
		partner, err := uc.partnerRepo.FindByLoginKey(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if partner != nil && partner.IsActive && verifyPartnerPassword(partner, in.Password) {
			return uc.issue(partner.LoginKey(), entity.RolePartner)
		}
		if in.Role == entity.RolePartner {
			return nil, domain.ErrInvalidCredentials
		}
	}

	if in.Role == "" || in.Role == entity.RoleCustomer {
		customer, err := uc.customerRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if customer != nil && customer.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)) == nil {
			return uc.issue(customer.Email, entity.RoleCustomer)
		}
		return nil, domain.ErrInvalidCredentials
	}

	return nil, domain.ErrInvalidCredentials
}

// Register crea un cliente: hashea el password con bcrypt, persiste y emite
// token de una vez (auto-login). Retorna ErrEmailAlreadyExists si el email ya
// está registrado; la cuenta existente no se modifica.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := &entity.Customer{
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return uc.issue(customer.Email, entity.RoleCustomer)
}

func (uc *AuthUseCase) issue(subject, role string) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer", Role: role}, nil
}

// verifyPartnerPassword compara el password contra el hash bcrypt del partner.
// DEPRECATED fallback: si la cuenta no tiene hash (pre-migración), se compara
// contra el campo legacy en texto plano. Nunca aplica a registros nuevos.
func verifyPartnerPassword(p *entity.Partner, password string) bool {
	if p.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
	}
	if p.LegacyPassword != nil {
		return subtle.ConstantTimeCompare([]byte(*p.LegacyPassword), []byte(password)) == 1
	}
	return false
}
