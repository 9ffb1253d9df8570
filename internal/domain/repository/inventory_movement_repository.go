package repository

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// InventoryMovementRepository puerto del libro de movimientos. Solo inserta y
// lee: no existe actualización ni borrado, el libro es de solo apéndice.
type InventoryMovementRepository interface {
	Create(m *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	// ListByProduct devuelve el kardex del producto en orden descendente (más reciente primero).
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// ListByProductAsc devuelve la historia completa en orden de commit (date, seq),
	// usada para reconstruir el stock por replay.
	ListByProductAsc(productID string) ([]*entity.InventoryMovement, error)
	CountByProduct(productID string) (int, error)
}
