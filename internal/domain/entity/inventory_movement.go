package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada    = "ENTRADA"    // ingreso de mercancía
	MovementTypeSalida     = "SALIDA"     // venta o retiro
	MovementTypeAjuste     = "AJUSTE"     // fija el stock en un valor absoluto
	MovementTypeDevolucion = "DEVOLUCION" // reingreso por devolución completada
)

// MovementTypes lista cerrada de tipos válidos.
var MovementTypes = []string{
	MovementTypeEntrada,
	MovementTypeSalida,
	MovementTypeAjuste,
	MovementTypeDevolucion,
}

// InventoryMovement es un registro inmutable del libro de inventario: se crea
// una vez y nunca se actualiza ni se borra. La historia ordenada por (Date, Seq)
// de un producto es la fuente de verdad de su stock: reproducirla desde 0
// debe dar exactamente products.stock.
type InventoryMovement struct {
	ID          string
	Seq         int64  // asignado por la BD, desempata movimientos con la misma fecha
	ProductID   string
	Type        string
	Quantity    int64  // magnitud no negativa; para AJUSTE es el stock objetivo absoluto
	StockBefore int64
	StockAfter  int64
	Date        time.Time
	CreatedBy   string  // usuario que ejecutó la operación
	SaleID      *string // venta asociada (SALIDA por venta, DEVOLUCION)
	Note        string
}
