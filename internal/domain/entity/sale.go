package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta registrada. Para el motor de devoluciones es de solo
// lectura: sus líneas son el techo contra el que se validan las cantidades
// solicitadas en devolución.
type Sale struct {
	ID         string
	CustomerID string
	UserID     string
	Date       time.Time
	Total      decimal.Decimal
	Lines      []SaleLine
}

// SaleLine línea de venta: producto, cantidad vendida y precio al momento de la venta.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// QuantitySold suma la cantidad vendida del producto en todas las líneas de la venta.
func (s *Sale) QuantitySold(productID string) int64 {
	var total int64
	for _, l := range s.Lines {
		if l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

// LineFor devuelve la primera línea de la venta para el producto, o nil.
func (s *Sale) LineFor(productID string) *SaleLine {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return &s.Lines[i]
		}
	}
	return nil
}
