package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rescate-api/internal/domain/entity"
)

// BagListFilter filtros y paginación para listados de bolsas.
// SortBy se valida contra una lista blanca en la implementación.
type BagListFilter struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	SortDir  string // "asc" | "desc"
	Limit    int
	Offset   int
}

// BagPage página de resultados con el total sin paginar.
type BagPage struct {
	Items []*entity.Bag
	Total int
}

// BagCounts conteos por estado para el dashboard del partner.
type BagCounts struct {
	Total   int
	Active  int
	SoldOut int
}

// BagRepository puerto de persistencia para bolsas.
type BagRepository interface {
	// Create persiste una bolsa nueva y asigna su ID.
	Create(ctx context.Context, bag *entity.Bag) error
	// GetByID retorna la bolsa o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Bag, error)
	// GetByIDForUpdate retorna la bolsa bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (vía TxRunner).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Bag, error)
	// GetByIDAndPartner retorna la bolsa solo si pertenece al partner; nil en
	// cualquier otro caso (la existencia de bolsas ajenas no se revela).
	GetByIDAndPartner(ctx context.Context, id, partnerID int64) (*entity.Bag, error)
	// Update sobreescribe los campos editables de la bolsa (no toca created_at
	// ni partner_id).
	Update(ctx context.Context, bag *entity.Bag) error
	// UpdateQuantityStatus persiste cantidad y estado en una sola sentencia
	// (usado por la reserva dentro de la transacción que tiene el lock).
	UpdateQuantityStatus(ctx context.Context, id int64, quantity int, status string) error
	// SetStatus cambia el estado de una bolsa del partner. Retorna false si la
	// bolsa no existe o no es suya.
	SetStatus(ctx context.Context, id, partnerID int64, status string) (bool, error)
	// Delete elimina una bolsa del partner. Retorna false si la bolsa no
	// existe o no es suya.
	Delete(ctx context.Context, id, partnerID int64) (bool, error)
	// ListByPartner lista las bolsas del partner con búsqueda, orden y paginación.
	ListByPartner(ctx context.Context, partnerID int64, f BagListFilter) (*BagPage, error)
	// ListPublic lista bolsas activas (status=active impuesto por la consulta).
	ListPublic(ctx context.Context, f BagListFilter) (*BagPage, error)
	// CountsByPartner retorna los conteos por estado del partner.
	CountsByPartner(ctx context.Context, partnerID int64) (*BagCounts, error)
}
