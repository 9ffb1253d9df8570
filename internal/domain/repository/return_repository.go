package repository

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// ReturnRepository puerto de persistencia del flujo de devoluciones.
type ReturnRepository interface {
	// Create persiste la devolución con sus líneas.
	Create(r *entity.Return) error
	// GetByID devuelve la devolución con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.Return, error)
	// GetForUpdate bloquea la fila de la devolución para serializar las
	// transiciones sobre la misma solicitud.
	GetForUpdate(id string) (*entity.Return, error)
	// UpdateState escribe el nuevo estado, el comentario y quién aplicó la
	// transición (paridad de auditoría con CreatedBy en los movimientos).
	UpdateState(id, state, comment, reviewedBy string) error
	// SumRequestedByProduct suma la cantidad solicitada del producto en todas
	// las devoluciones no rechazadas de la venta. Es la lectura pura sobre la
	// historia persistida que alimenta el cálculo de disponibilidad; no hay
	// contador cacheado que pueda desviarse.
	SumRequestedByProduct(saleID, productID string) (int64, error)
	ListBySale(saleID string) ([]*entity.Return, error)
	List(state string, limit, offset int) ([]*entity.Return, error)
}
