package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del flujo de devoluciones.
const (
	ReturnStatePendiente  = "PENDIENTE"
	ReturnStateAprobada   = "APROBADA"
	ReturnStateRechazada  = "RECHAZADA"
	ReturnStateCompletada = "COMPLETADA"
)

// Return (devolución) es la solicitud de un cliente para regresar unidades
// vendidas. Se crea en PENDIENTE y solo cambia mediante las transiciones del
// flujo; nunca se borra físicamente (rechazadas y completadas quedan para auditoría).
type Return struct {
	ID           string
	SaleID       string
	UserID       string // usuario que registró la solicitud
	Motive       string
	State        string
	RefundAmount decimal.Decimal // suma de subtotales de las líneas
	AdminComment string          // comentario de aprobación o motivo de rechazo
	ReviewedBy   string          // usuario que aplicó la última transición
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Lines        []ReturnLine
}

// ReturnLine línea de devolución. UnitPrice y Subtotal se capturan de la venta
// al momento de la solicitud y no se recalculan, para conservar el valor
// histórico aunque el precio del producto cambie después.
type ReturnLine struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  int64 // cantidad solicitada (> 0)
	Motive    string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
