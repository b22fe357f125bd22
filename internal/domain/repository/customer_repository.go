package repository

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	// Create persiste un cliente nuevo y asigna su ID.
	// Retorna domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByEmail retorna el cliente con ese email exacto o nil si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
}
