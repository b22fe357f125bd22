package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación del puerto PartnerRepository sobre PostgreSQL (usable con pool o tx).
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador de persistencia para partners. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `id, name, address, lat, lng, thumbnail_url, email, login_username, password_hash, legacy_password, is_active`

// Create persiste un partner nuevo y asigna su ID.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	query := `
		INSERT INTO partners (name, address, lat, lng, thumbnail_url, email, login_username, password_hash, legacy_password, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Address, p.Lat, p.Lng, p.ThumbnailURL,
		p.Email, p.LoginUsername, p.PasswordHash, p.LegacyPassword, p.IsActive,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert partner: login_username duplicado")
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un partner por ID, o nil si no existe.
func (r *PartnerRepo) GetByID(ctx context.Context, id int64) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	p, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// FindByLoginKey busca por email, login_username o nombre (match exacto).
// Las tres claves de fallback se conservan por compatibilidad con clientes legacy.
func (r *PartnerRepo) FindByLoginKey(ctx context.Context, identifier string) (*entity.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE email = $1 OR login_username = $1 OR name = $1
		LIMIT 1`
	p, err := r.scanOne(r.q.QueryRow(ctx, query, identifier))
	if err != nil {
		return nil, fmt.Errorf("find partner by login key: %w", err)
	}
	return p, nil
}

// List retorna todos los partners ordenados por ID.
func (r *PartnerRepo) List(ctx context.Context) ([]*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.ThumbnailURL,
			&p.Email, &p.LoginUsername, &p.PasswordHash, &p.LegacyPassword, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PartnerRepo) scanOne(row pgx.Row) (*entity.Partner, error) {
	var p entity.Partner
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.ThumbnailURL,
		&p.Email, &p.LoginUsername, &p.PasswordHash, &p.LegacyPassword, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
