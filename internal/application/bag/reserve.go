package bag

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
	"github.com/jhoicas/rescate-api/internal/domain/entity"
	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

// ReserveUseCase reserva una unidad de una bolsa de forma transaccional.
// Todo el read-modify-write corre dentro de una sola transacción con la fila
// bloqueada (SELECT FOR UPDATE): dos reservas concurrentes sobre la última
// unidad no pueden vender ambas ni dejar cantidad negativa.
type ReserveUseCase struct {
	txRunner TxRunner
}

// NewReserveUseCase construye el caso de uso.
func NewReserveUseCase(txRunner TxRunner) *ReserveUseCase {
	return &ReserveUseCase{txRunner: txRunner}
}

// Reserve descuenta una unidad de la bolsa y retorna cantidad restante y estado.
//   - ErrNotFound si la bolsa no existe.
//   - ErrBagUnavailable si status != active o cantidad <= 0.
//   - Al llegar a cero, status pasa a sold_out en la misma transacción.
func (uc *ReserveUseCase) Reserve(ctx context.Context, bagID int64) (*dto.ReserveResponse, error) {
	var out *dto.ReserveResponse
	err := uc.txRunner.Run(ctx, func(bags repository.BagRepository) error {
		b, err := bags.GetByIDForUpdate(ctx, bagID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BagStatusActive || b.Quantity <= 0 {
			return domain.ErrBagUnavailable
		}
		b.Quantity--
		if b.Quantity == 0 {
			b.Status = entity.BagStatusSoldOut
		}
		if err := bags.UpdateQuantityStatus(ctx, b.ID, b.Quantity, b.Status); err != nil {
			return err
		}
		out = &dto.ReserveResponse{BagID: b.ID, Remaining: b.Quantity, Status: b.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
