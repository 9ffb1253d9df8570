package returns

import (
	"context"

	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el flujo de devoluciones. La transición a
// COMPLETADA postea movimientos y cambia el estado en el mismo Commit.
type TxRunner interface {
	RunReturns(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
	) error) error
}
