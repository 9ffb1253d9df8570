package dto

import (
	"time"

	"github.com/jsalazarc/Ventas-api/internal/application/ledger"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
)

// EntradaRequest body para POST /api/inventory/entradas.
type EntradaRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

// SalidaRequest body para POST /api/inventory/salidas. SaleID es opcional y
// enlaza la salida con la venta que la originó.
type SalidaRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int64   `json:"quantity" validate:"required,min=1"`
	SaleID    *string `json:"sale_id,omitempty"`
	Note      string  `json:"note" validate:"omitempty,max=500"`
}

// AjusteRequest body para POST /api/inventory/ajustes. TargetStock es el valor
// absoluto en el que queda el stock, no un delta.
type AjusteRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	TargetStock int64  `json:"target_stock" validate:"min=0"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

// MovementDTO movimiento de inventario en respuestas.
type MovementDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	StockBefore int64     `json:"stock_before"`
	StockAfter  int64     `json:"stock_after"`
	Date        time.Time `json:"date"`
	CreatedBy   string    `json:"created_by"`
	SaleID      *string   `json:"sale_id,omitempty"`
	Note        string    `json:"note,omitempty"`
}

// MovementResponse respuesta de registro de movimiento.
type MovementResponse struct {
	Movement MovementDTO `json:"movement"`
	NewStock int64       `json:"new_stock"`
}

// ToMovementDTO mapea la entidad al DTO de respuesta.
func ToMovementDTO(m *entity.InventoryMovement) MovementDTO {
	return MovementDTO{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Date:        m.Date,
		CreatedBy:   m.CreatedBy,
		SaleID:      m.SaleID,
		Note:        m.Note,
	}
}

// ToMovementResponse mapea el resultado del caso de uso.
func ToMovementResponse(r *ledger.MovementResult) MovementResponse {
	return MovementResponse{Movement: ToMovementDTO(r.Movement), NewStock: r.NewStock}
}

// KardexResponse historial de movimientos de un producto.
type KardexResponse struct {
	ProductID string        `json:"product_id"`
	Movements []MovementDTO `json:"movements"`
	Page      PageResponse  `json:"page"`
}

// AuditResponse resultado de la verificación de consistencia del libro.
type AuditResponse struct {
	ProductID     string `json:"product_id"`
	Movements     int    `json:"movements"`
	ReplayedStock int64  `json:"replayed_stock"`
	CurrentStock  int64  `json:"current_stock"`
	Consistent    bool   `json:"consistent"`
}
