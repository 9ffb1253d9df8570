package entity

import "time"

// Niveles de urgencia de una alerta de stock.
const (
	UrgencyCritico = "CRITICO" // stock en cero
	UrgencyAlto    = "ALTO"    // 2 unidades o menos
	UrgencyMedio   = "MEDIO"   // en o bajo el umbral mínimo
	UrgencyBajo    = "BAJO"    // sin alerta
)

// Tipos de alerta.
const (
	AlertKindStockBajo = "STOCK_BAJO"
)

// StockAlert registra que el stock de un producto cruzó un umbral. Es un efecto
// de notificación derivado del libro de movimientos: nunca bloquea ni revierte
// un movimiento ya confirmado.
type StockAlert struct {
	ID        string
	ProductID string
	Kind      string
	Urgency   string
	Stock     int64 // stock al momento de la evaluación
	MinStock  int64 // umbral del producto al momento de la evaluación
	Read      bool
	CreatedAt time.Time
}
