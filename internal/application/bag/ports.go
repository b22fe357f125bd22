package bag

import (
	"context"

	"github.com/jhoicas/rescate-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con un BagRepository atado a
// ella. Commit si fn retorna nil, Rollback en caso contrario. Lo implementa
// postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(bags repository.BagRepository) error) error
}
