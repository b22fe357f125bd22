package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

var _ repository.BagRepository = (*BagRepo)(nil)

// BagRepo implementación del puerto BagRepository sobre PostgreSQL (usable con pool o tx).
type BagRepo struct {
	q Querier
}

// NewBagRepository construye el adaptador de persistencia para bolsas. Pasar pool o tx (Querier).
func NewBagRepository(q Querier) *BagRepo {
	return &BagRepo{q: q}
}

const bagColumns = `id, name, description, price, quantity, pickup_time, status, partner_id, address, lat, lng, thumbnail_url, created_at`

// Lista blanca de columnas ordenables; sort_by desconocido cae en "id".
var bagSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"price":       "price",
	"quantity":    "quantity",
	"status":      "status",
	"pickup_time": "pickup_time",
	"created_at":  "created_at",
}

// Create persiste una bolsa nueva y asigna su ID.
func (r *BagRepo) Create(ctx context.Context, b *entity.Bag) error {
	query := `
		INSERT INTO bags (name, description, price, quantity, pickup_time, status, partner_id, address, lat, lng, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.Name, b.Description, b.Price, b.Quantity, b.PickupTime, b.Status,
		b.PartnerID, b.Address, b.Lat, b.Lng, b.ThumbnailURL, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert bag: %w", err)
	}
	return nil
}

// GetByID obtiene una bolsa por ID, o nil si no existe.
func (r *BagRepo) GetByID(ctx context.Context, id int64) (*entity.Bag, error) {
	query := `SELECT ` + bagColumns + ` FROM bags WHERE id = $1`
	b, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get bag: %w", err)
	}
	return b, nil
}

// GetByIDForUpdate obtiene la bolsa bloqueando la fila (SELECT FOR UPDATE).
// El lock vive hasta el cierre de la transacción; llamar solo vía TxRunner.
func (r *BagRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Bag, error) {
	query := `SELECT ` + bagColumns + ` FROM bags WHERE id = $1 FOR UPDATE`
	b, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get bag for update: %w", err)
	}
	return b, nil
}

// GetByIDAndPartner obtiene la bolsa solo si pertenece al partner; nil en otro caso.
func (r *BagRepo) GetByIDAndPartner(ctx context.Context, id, partnerID int64) (*entity.Bag, error) {
	query := `SELECT ` + bagColumns + ` FROM bags WHERE id = $1 AND partner_id = $2`
	b, err := r.scanOne(r.q.QueryRow(ctx, query, id, partnerID))
	if err != nil {
		return nil, fmt.Errorf("get bag by partner: %w", err)
	}
	return b, nil
}

// Update sobreescribe los campos editables. No toca partner_id ni created_at.
func (r *BagRepo) Update(ctx context.Context, b *entity.Bag) error {
	query := `
		UPDATE bags
		SET name = $2, description = $3, price = $4, quantity = $5, pickup_time = $6,
		    status = $7, address = $8, lat = $9, lng = $10, thumbnail_url = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.Price, b.Quantity, b.PickupTime,
		b.Status, b.Address, b.Lat, b.Lng, b.ThumbnailURL,
	)
	if err != nil {
		return fmt.Errorf("update bag: %w", err)
	}
	return nil
}

// UpdateQuantityStatus persiste cantidad y estado en una sola sentencia
// (paso final de la reserva, con la fila ya bloqueada).
func (r *BagRepo) UpdateQuantityStatus(ctx context.Context, id int64, quantity int, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE bags SET quantity = $2, status = $3 WHERE id = $1`,
		id, quantity, status,
	)
	if err != nil {
		return fmt.Errorf("update bag quantity/status: %w", err)
	}
	return nil
}

// SetStatus cambia el estado de una bolsa del partner. false si no existe o no es suya.
func (r *BagRepo) SetStatus(ctx context.Context, id, partnerID int64, status string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE bags SET status = $3 WHERE id = $1 AND partner_id = $2`,
		id, partnerID, status,
	)
	if err != nil {
		return false, fmt.Errorf("set bag status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina una bolsa del partner. false si no existe o no es suya.
func (r *BagRepo) Delete(ctx context.Context, id, partnerID int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM bags WHERE id = $1 AND partner_id = $2`,
		id, partnerID,
	)
	if err != nil {
		return false, fmt.Errorf("delete bag: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByPartner lista bolsas del partner con búsqueda, orden y paginación.
func (r *BagRepo) ListByPartner(ctx context.Context, partnerID int64, f repository.BagListFilter) (*repository.BagPage, error) {
	where := []string{"partner_id = $1"}
	args := []any{partnerID}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(name ILIKE $"+n+" OR description ILIKE $"+n+")")
	}
	return r.listPage(ctx, where, args, f)
}

// ListPublic lista bolsas activas con búsqueda, filtros de precio, orden y paginación.
// El filtro status = 'active' lo impone la consulta.
func (r *BagRepo) ListPublic(ctx context.Context, f repository.BagListFilter) (*repository.BagPage, error) {
	where := []string{"status = 'active'"}
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(name ILIKE $"+n+" OR description ILIKE $"+n+")")
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		where = append(where, "price >= $"+strconv.Itoa(len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where = append(where, "price <= $"+strconv.Itoa(len(args)))
	}
	return r.listPage(ctx, where, args, f)
}

// CountsByPartner conteos por estado en una sola consulta.
func (r *BagRepo) CountsByPartner(ctx context.Context, partnerID int64) (*repository.BagCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'sold_out')
		FROM bags WHERE partner_id = $1`
	var c repository.BagCounts
	if err := r.q.QueryRow(ctx, query, partnerID).Scan(&c.Total, &c.Active, &c.SoldOut); err != nil {
		return nil, fmt.Errorf("count bags: %w", err)
	}
	return &c, nil
}

func (r *BagRepo) listPage(ctx context.Context, where []string, args []any, f repository.BagListFilter) (*repository.BagPage, error) {
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bags WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count bags: %w", err)
	}

	sortCol, ok := bagSortColumns[f.SortBy]
	if !ok {
		sortCol = "id"
	}
	dir := "DESC"
	if f.SortDir == "asc" {
		dir = "ASC"
	}
	limitArg := strconv.Itoa(len(args) + 1)
	offsetArg := strconv.Itoa(len(args) + 2)
	args = append(args, f.Limit, f.Offset)

	query := `SELECT ` + bagColumns + ` FROM bags WHERE ` + cond +
		` ORDER BY ` + sortCol + ` ` + dir +
		` LIMIT $` + limitArg + ` OFFSET $` + offsetArg
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bags: %w", err)
	}
	defer rows.Close()

	var items []*entity.Bag
	for rows.Next() {
		var b entity.Bag
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.Quantity, &b.PickupTime,
			&b.Status, &b.PartnerID, &b.Address, &b.Lat, &b.Lng, &b.ThumbnailURL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bag: %w", err)
		}
		items = append(items, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.BagPage{Items: items, Total: total}, nil
}

func (r *BagRepo) scanOne(row pgx.Row) (*entity.Bag, error) {
	var b entity.Bag
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.Quantity, &b.PickupTime,
		&b.Status, &b.PartnerID, &b.Address, &b.Lat, &b.Lng, &b.ThumbnailURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
