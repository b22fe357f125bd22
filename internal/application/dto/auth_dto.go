package dto

// LoginRequest entrada para login. Role es opcional ("partner" | "customer");
// sin role se intenta primero como partner y después como cliente.
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=partner customer"`
}

// RegisterRequest entrada para auto-registro de clientes.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
}

// TokenResponse salida de login/register: token bearer + rol resuelto.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}
