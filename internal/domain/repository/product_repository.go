package repository

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos. Stock solo se
// escribe vía UpdateStock dentro de la transacción que registra el movimiento.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE)
	// para serializar los movimientos concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, stock int64) error
	List(limit, offset int) ([]*entity.Product, error)
}
