package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la tienda (tienda única, una sola ubicación).
// Stock es la cantidad disponible; el único escritor de este campo es el libro
// de movimientos de inventario, nunca se modifica directamente.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Stock       int64           // cantidad disponible (entera, >= 0)
	MinStock    int64           // umbral mínimo que dispara alertas de reposición
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
