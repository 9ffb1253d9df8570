package ledger

import (
	"context"

	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Garantiza que el movimiento y el
// nuevo stock se hagan visibles juntos o no se hagan visibles en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
