package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rescate-api/internal/application/auth"
	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/rescate-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios
// ──────────────────────────────────────────────────────────────────────────────

type fakePartnerRepo struct {
	partners []*entity.Partner
}

func (r *fakePartnerRepo) Create(_ context.Context, p *entity.Partner) error {
	p.ID = int64(len(r.partners) + 1)
	r.partners = append(r.partners, p)
	return nil
}

func (r *fakePartnerRepo) GetByID(_ context.Context, id int64) (*entity.Partner, error) {
	for _, p := range r.partners {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePartnerRepo) FindByLoginKey(_ context.Context, identifier string) (*entity.Partner, error) {
	for _, p := range r.partners {
		if p.Email == identifier || p.LoginUsername == identifier || p.Name == identifier {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePartnerRepo) List(_ context.Context) ([]*entity.Partner, error) {
	return r.partners, nil
}

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c.ID = int64(len(r.customers) + 1)
	r.customers = append(r.customers, c)
	return nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *fakePartnerRepo, *fakeCustomerRepo) {
	t.Helper()
	partners := &fakePartnerRepo{}
	customers := &fakeCustomerRepo{}
	uc := auth.NewAuthUseCase(partners, customers, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "rescate-api-test",
	})
	return uc, partners, customers
}

func seedPartner(t *testing.T, repo *fakePartnerRepo, p entity.Partner) *entity.Partner {
	t.Helper()
	copied := p
	require.NoError(t, repo.Create(context.Background(), &copied))
	return &copied
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login — partners
// ──────────────────────────────────────────────────────────────────────────────

// El partner puede autenticarse con cualquiera de sus tres claves: email,
// username de login o nombre del comercio (comparación exacta).
func TestLogin_PartnerPorCadaClave(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	seedPartner(t, partners, entity.Partner{
		Name:          "Panadería La Espiga",
		Email:         "espiga@demo.local",
		LoginUsername: "laespiga",
		PasswordHash:  mustHash(t, "demo1234"),
		IsActive:      true,
	})

	for _, identifier := range []string{"espiga@demo.local", "laespiga", "Panadería La Espiga"} {
		out, err := uc.Login(context.Background(), dto.LoginRequest{
			EmailOrUsername: identifier,
			Password:        "demo1234",
		})
		require.NoError(t, err, "login con %q debe funcionar", identifier)
		assert.Equal(t, "partner", out.Role)
		assert.Equal(t, "bearer", out.TokenType)

		// El subject del token es la clave de login canónica, no el identificador usado.
		subject, role, err := pkgjwt.Parse(testSecret, out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "laespiga", subject)
		assert.Equal(t, "partner", role)
	}
}

// Password incorrecto → siempre ErrInvalidCredentials, nunca un error que
// revele en qué paso falló la verificación.
func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	seedPartner(t, partners, entity.Partner{
		Name:         "Panadería La Espiga",
		PasswordHash: mustHash(t, "demo1234"),
		IsActive:     true,
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "Panadería La Espiga",
		Password:        "otro-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, out)
}

// Identificador inexistente → el mismo ErrInvalidCredentials que un password malo.
func TestLogin_IdentificadorInexistente(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "nadie@demo.local",
		Password:        "demo1234",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Partner desactivado → ErrInvalidCredentials aunque el password sea correcto.
func TestLogin_PartnerInactivo(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	seedPartner(t, partners, entity.Partner{
		LoginUsername: "laespiga",
		PasswordHash:  mustHash(t, "demo1234"),
		IsActive:      false,
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "laespiga",
		Password:        "demo1234",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Cuenta pre-migración sin hash: se compara contra el password legacy en texto
// plano. Solo aplica cuando PasswordHash está vacío.
func TestLogin_PartnerLegacySinHash(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	legacy := "password-viejo"
	seedPartner(t, partners, entity.Partner{
		Name:           "Café Antiguo",
		LegacyPassword: &legacy,
		IsActive:       true,
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "Café Antiguo",
		Password:        "password-viejo",
	})
	require.NoError(t, err)
	assert.Equal(t, "partner", out.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "Café Antiguo",
		Password:        "password-nuevo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Si la cuenta ya tiene hash, el password legacy deja de valer.
func TestLogin_HashIgnoraPasswordLegacy(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	legacy := "password-viejo"
	seedPartner(t, partners, entity.Partner{
		LoginUsername:  "laespiga",
		PasswordHash:   mustHash(t, "demo1234"),
		LegacyPassword: &legacy,
		IsActive:       true,
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "laespiga",
		Password:        "password-viejo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"con hash presente el password legacy no debe aceptarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login — clientes y role hint
// ──────────────────────────────────────────────────────────────────────────────

// Sin role hint: si no hay partner que coincida, se intenta como cliente.
func TestLogin_FallbackACliente(t *testing.T) {
	uc, _, customers := newAuthFixture(t)
	customers.customers = append(customers.customers, &entity.Customer{
		ID:           1,
		Email:        "ana@demo.local",
		PasswordHash: mustHash(t, "demo1234"),
		IsActive:     true,
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "ana@demo.local",
		Password:        "demo1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "customer", out.Role)

	subject, role, err := pkgjwt.Parse(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@demo.local", subject)
	assert.Equal(t, "customer", role)
}

// Con role=customer no se consulta la tabla de partners aunque el
// identificador coincida con un partner.
func TestLogin_RoleHintCustomerSaltaPartners(t *testing.T) {
	uc, partners, customers := newAuthFixture(t)
	seedPartner(t, partners, entity.Partner{
		Email:        "mismo@demo.local",
		PasswordHash: mustHash(t, "demo1234"),
		IsActive:     true,
	})
	customers.customers = append(customers.customers, &entity.Customer{
		ID:           1,
		Email:        "mismo@demo.local",
		PasswordHash: mustHash(t, "otro5678"),
		IsActive:     true,
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "mismo@demo.local",
		Password:        "otro5678",
		Role:            "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, "customer", out.Role)

	// Y con role=partner, el password del cliente no sirve.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "mismo@demo.local",
		Password:        "otro5678",
		Role:            "partner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Identificador con espacios alrededor: se recorta antes de buscar.
func TestLogin_RecortaEspacios(t *testing.T) {
	uc, partners, _ := newAuthFixture(t)
	seedPartner(t, partners, entity.Partner{
		LoginUsername: "laespiga",
		PasswordHash:  mustHash(t, "demo1234"),
		IsActive:      true,
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		EmailOrUsername: "  laespiga  ",
		Password:        "demo1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "partner", out.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Registro exitoso: hash bcrypt persistido y auto-login (token de una vez).
func TestRegister_CreaClienteYEmiteToken(t *testing.T) {
	uc, _, customers := newAuthFixture(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@demo.local",
		Password: "demo1234",
		FullName: "Ana Demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "customer", out.Role)
	assert.NotEmpty(t, out.AccessToken)

	require.Len(t, customers.customers, 1)
	created := customers.customers[0]
	assert.Equal(t, "ana@demo.local", created.Email)
	assert.Equal(t, "Ana Demo", created.FullName)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "demo1234", created.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("demo1234")))
}

// No se impone longitud mínima de password: un password corto se acepta.
func TestRegister_PasswordCortoPermitido(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@demo.local",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

// Email duplicado → ErrEmailAlreadyExists y la cuenta existente queda intacta.
func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, customers := newAuthFixture(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@demo.local",
		Password: "demo1234",
		FullName: "Ana Original",
	})
	require.NoError(t, err)
	originalHash := customers.customers[0].PasswordHash

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@demo.local",
		Password: "otro-password",
		FullName: "Impostora",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.Len(t, customers.customers, 1, "no debe crearse una segunda cuenta")
	assert.Equal(t, "Ana Original", customers.customers[0].FullName)
	assert.Equal(t, originalHash, customers.customers[0].PasswordHash)
}

// Email sin forma de email → ErrInvalidInput.
func TestRegister_EmailInvalido(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "no-es-un-email",
		Password: "demo1234",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Campos vacíos en login → ErrInvalidInput, no ErrInvalidCredentials.
func TestLogin_CamposVacios(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{EmailOrUsername: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(context.Background(), dto.LoginRequest{EmailOrUsername: "x", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
