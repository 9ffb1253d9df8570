// Package ledger contiene las reglas puras del libro de inventario: cómo cada
// tipo de movimiento transforma el stock y cuándo un movimiento es admisible.
// El comportamiento vive aquí como funciones que conmutan sobre el tipo, no
// dentro de los structs, para que la matriz completa sea verificable en tests.
package ledger

import (
	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
)

// ValidateMovement verifica la admisibilidad antes de confirmar:
// ENTRADA/SALIDA/DEVOLUCION exigen cantidad estrictamente positiva;
// AJUSTE exige objetivo >= 0 (la cantidad es el stock absoluto, no un delta).
func ValidateMovement(movType string, quantity int64) error {
	switch movType {
	case entity.MovementTypeEntrada, entity.MovementTypeSalida, entity.MovementTypeDevolucion:
		if quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAjuste:
		if quantity < 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ComputeStock aplica la regla del tipo de movimiento y devuelve el stock
// resultante. La cantidad siempre llega como magnitud no negativa; el signo
// lo decide el tipo. SALIDA falla con InsufficientStock si la cantidad supera
// el stock actual: el stock nunca queda negativo.
func ComputeStock(productID, movType string, stockBefore, quantity int64) (int64, error) {
	switch movType {
	case entity.MovementTypeEntrada, entity.MovementTypeDevolucion:
		return stockBefore + quantity, nil
	case entity.MovementTypeSalida:
		if quantity > stockBefore {
			return 0, &domain.InsufficientStockError{
				ProductID: productID,
				Stock:     stockBefore,
				Requested: quantity,
			}
		}
		return stockBefore - quantity, nil
	case entity.MovementTypeAjuste:
		// La cantidad es el stock objetivo absoluto, no un delta.
		return quantity, nil
	}
	return 0, domain.ErrInvalidInput
}
