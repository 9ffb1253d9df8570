package repository

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// SaleRepository puerto de lectura de ventas. El motor de devoluciones nunca
// modifica una venta; solo necesita sus líneas como techo de validación.
type SaleRepository interface {
	// GetByID devuelve la venta con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta mientras se valida y crea una
	// devolución, para que dos solicitudes simultáneas sobre la misma venta
	// no pasen ambas la validación de disponibilidad.
	GetForUpdate(id string) (*entity.Sale, error)
}
