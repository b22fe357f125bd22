package entity

// Roles válidos para Identity.
const (
	RolePartner  = "partner"
	RoleCustomer = "customer"
)

// Principal es la capacidad mínima común de las cuentas autenticables.
// Lo implementan Partner y Customer; evita jerarquías de herencia en el
// dispatch por rol.
type Principal interface {
	PrincipalID() int64
	Role() string
	Active() bool
}

// Identity es la identidad efímera resuelta por request a partir de un token
// verificado. Nunca se persiste.
type Identity struct {
	Role  string
	ID    int64
	Email string
}

func (p *Partner) PrincipalID() int64 { return p.ID }
func (p *Partner) Role() string       { return RolePartner }
func (p *Partner) Active() bool       { return p.IsActive }

func (c *Customer) PrincipalID() int64 { return c.ID }
func (c *Customer) Role() string       { return RoleCustomer }
func (c *Customer) Active() bool       { return c.IsActive }
