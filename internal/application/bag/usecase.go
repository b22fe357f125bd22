package bag

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

// BagUseCase gestión de bolsas del partner y catálogo público.
type BagUseCase struct {
	bagRepo repository.BagRepository
}

// NewBagUseCase construye el caso de uso.
func NewBagUseCase(bagRepo repository.BagRepository) *BagUseCase {
	return &BagUseCase{bagRepo: bagRepo}
}

// ListQuery parámetros de listado del partner.
type ListQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
	Search  string
}

// PublicQuery parámetros de listado público (solo bolsas activas).
type PublicQuery struct {
	ListQuery
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Size > 200 {
		q.Size = 200
	}
	if q.SortBy == "" {
		q.SortBy = "id"
	}
	if q.SortDir != "asc" {
		q.SortDir = "desc"
	}
}

// Create valida y persiste una bolsa nueva del partner. Status por defecto
// "active"; created_at se fija una sola vez aquí.
func (uc *BagUseCase) Create(ctx context.Context, partnerID int64, in dto.CreateBagRequest) (*dto.BagResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.BagStatusActive
	}
	if err := validateBagFields(in.Name, in.Price, in.Quantity, status, in.Lat, in.Lng); err != nil {
		return nil, err
	}
	b := &entity.Bag{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		PickupTime:   in.PickupTime,
		Status:       status,
		PartnerID:    partnerID,
		Address:      in.Address,
		Lat:          in.Lat,
		Lng:          in.Lng,
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.bagRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBagResponse(b), nil
}

// Update aplica un patch sobre una bolsa del partner. Solo los campos
// presentes (puntero no nil) se modifican. Editar quantity directamente nunca
// cambia status: el estado es controlado por el partner salvo en la reserva.
// Bolsa ajena o inexistente -> ErrNotFound (no se revela cuál de las dos).
func (uc *BagUseCase) Update(ctx context.Context, partnerID, bagID int64, in dto.UpdateBagRequest) (*dto.BagResponse, error) {
	b, err := uc.bagRepo.GetByIDAndPartner(ctx, bagID, partnerID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
	if in.Quantity != nil {
		b.Quantity = *in.Quantity
	}
	if in.PickupTime != nil {
		b.PickupTime = in.PickupTime
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Lat != nil {
		b.Lat = in.Lat
	}
	if in.Lng != nil {
		b.Lng = in.Lng
	}
	if in.ThumbnailURL != nil {
		b.ThumbnailURL = *in.ThumbnailURL
	}
	if err := validateBagFields(b.Name, b.Price, b.Quantity, b.Status, b.Lat, b.Lng); err != nil {
		return nil, err
	}
	if err := uc.bagRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBagResponse(b), nil
}

// Delete elimina una bolsa del partner. Bolsa ajena o inexistente -> ErrNotFound.
func (uc *BagUseCase) Delete(ctx context.Context, partnerID, bagID int64) error {
	ok, err := uc.bagRepo.Delete(ctx, bagID, partnerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el estado de una bolsa del partner. El estado no se
// auto-revierte nunca: reactivar una bolsa sold_out tras reponer cantidad es
// una decisión explícita del partner vía este endpoint.
func (uc *BagUseCase) SetStatus(ctx context.Context, partnerID, bagID int64, status string) error {
	if !entity.ValidBagStatus(status) {
		return domain.ErrInvalidInput
	}
	ok, err := uc.bagRepo.SetStatus(ctx, bagID, partnerID, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListByPartner lista las bolsas del partner con búsqueda, orden y paginación.
func (uc *BagUseCase) ListByPartner(ctx context.Context, partnerID int64, q ListQuery) (*dto.BagListResponse, error) {
	q.normalize()
	page, err := uc.bagRepo.ListByPartner(ctx, partnerID, repository.BagListFilter{
		Search:  q.Search,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
		Limit:   q.Size,
		Offset:  (q.Page - 1) * q.Size,
	})
	if err != nil {
		return nil, err
	}
	return toBagListResponse(page, q), nil
}

// Counts retorna los conteos por estado del partner.
func (uc *BagUseCase) Counts(ctx context.Context, partnerID int64) (*dto.BagCountsResponse, error) {
	counts, err := uc.bagRepo.CountsByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return &dto.BagCountsResponse{Total: counts.Total, Active: counts.Active, SoldOut: counts.SoldOut}, nil
}

// PublicList lista bolsas activas para el catálogo público. El filtro
// status=active lo impone la consulta, no el caller.
func (uc *BagUseCase) PublicList(ctx context.Context, q PublicQuery) (*dto.BagListResponse, error) {
	q.normalize()
	page, err := uc.bagRepo.ListPublic(ctx, repository.BagListFilter{
		Search:   q.Search,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   q.SortBy,
		SortDir:  q.SortDir,
		Limit:    q.Size,
		Offset:   (q.Page - 1) * q.Size,
	})
	if err != nil {
		return nil, err
	}
	return toBagListResponse(page, q.ListQuery), nil
}

// GetByID detalle público de una bolsa.
func (uc *BagUseCase) GetByID(ctx context.Context, bagID int64) (*dto.BagResponse, error) {
	b, err := uc.bagRepo.GetByID(ctx, bagID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBagResponse(b), nil
}

func validateBagFields(name string, price decimal.Decimal, quantity int, status string, lat, lng *float64) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidInput
	}
	if price.IsNegative() || quantity < 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidBagStatus(status) {
		return domain.ErrInvalidInput
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return domain.ErrInvalidInput
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toBagResponse(b *entity.Bag) *dto.BagResponse {
	return &dto.BagResponse{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Price:        b.Price,
		Quantity:     b.Quantity,
		PickupTime:   b.PickupTime,
		Status:       b.Status,
		PartnerID:    b.PartnerID,
		Address:      b.Address,
		Lat:          b.Lat,
		Lng:          b.Lng,
		ThumbnailURL: b.ThumbnailURL,
		CreatedAt:    b.CreatedAt,
	}
}

func toBagListResponse(page *repository.BagPage, q ListQuery) *dto.BagListResponse {
	items := make([]dto.BagResponse, 0, len(page.Items))
	for _, b := range page.Items {
		items = append(items, *toBagResponse(b))
	}
	return &dto.BagListResponse{
		Items: items,
		Total: page.Total,
		Page:  q.Page,
		Size:  q.Size,
		Pages: dto.Pages(page.Total, q.Size),
	}
}
