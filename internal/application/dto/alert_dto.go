package dto

import (
	"time"

	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
)

// StockAlertDTO alerta de stock en respuestas.
type StockAlertDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Kind      string    `json:"kind"`
	Urgency   string    `json:"urgency"`
	Stock     int64     `json:"stock"`
	MinStock  int64     `json:"min_stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ToStockAlertDTO mapea la entidad al DTO de respuesta.
func ToStockAlertDTO(a *entity.StockAlert) StockAlertDTO {
	return StockAlertDTO{
		ID:        a.ID,
		ProductID: a.ProductID,
		Kind:      a.Kind,
		Urgency:   a.Urgency,
		Stock:     a.Stock,
		MinStock:  a.MinStock,
		CreatedAt: a.CreatedAt,
	}
}
