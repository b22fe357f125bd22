package entity

// Partner representa un comercio que publica bolsas sorpresa.
// Email, LoginUsername y PasswordHash son opcionales: existen partners legacy
// cargados antes de habilitar la autenticación.
type Partner struct {
	ID            int64
	Name          string
	Address       string
	Lat           *float64
	Lng           *float64
	ThumbnailURL  string
	Email         string
	LoginUsername string
	PasswordHash  string
	// LegacyPassword es la contraseña en texto plano de cuentas pre-migración.
	// DEPRECATED: solo se consulta cuando PasswordHash está vacío; los registros
	// nuevos siempre llevan hash bcrypt.
	LegacyPassword *string
	IsActive       bool
}

// LoginKey devuelve el identificador que se embebe como subject del token:
// el primero no vacío de login_username, email o nombre.
func (p *Partner) LoginKey() string {
	if p.LoginUsername != "" {
		return p.LoginUsername
	}
	if p.Email != "" {
		return p.Email
	}
	return p.Name
}
