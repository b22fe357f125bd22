package repository

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/domain/entity"
)

// PartnerRepository puerto de persistencia para partners.
type PartnerRepository interface {
	// Create persiste un partner nuevo y asigna su ID.
	Create(ctx context.Context, partner *entity.Partner) error
	// GetByID retorna el partner o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Partner, error)
	// FindByLoginKey busca por email, login_username o nombre (comparación
	// exacta, en ese orden de claves). Quirk legacy preservado por
	// compatibilidad con clientes antiguos. Retorna nil si no hay match.
	FindByLoginKey(ctx context.Context, identifier string) (*entity.Partner, error)
	// List retorna todos los partners ordenados por ID.
	List(ctx context.Context) ([]*entity.Partner, error)
}
