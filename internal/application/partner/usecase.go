package partner

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

// PartnerUseCase directorio público de partners.
type PartnerUseCase struct {
	partnerRepo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(partnerRepo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{partnerRepo: partnerRepo}
}

// List retorna los resúmenes públicos de todos los partners (sin credenciales).
func (uc *PartnerUseCase) List(ctx context.Context) ([]dto.PartnerSummary, error) {
	partners, err := uc.partnerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerSummary, 0, len(partners))
	for _, p := range partners {
		out = append(out, dto.PartnerSummary{
			ID:           p.ID,
			Name:         p.Name,
			Address:      p.Address,
			Lat:          p.Lat,
			Lng:          p.Lng,
			ThumbnailURL: p.ThumbnailURL,
		})
	}
	return out, nil
}
