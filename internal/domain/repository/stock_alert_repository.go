package repository

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// StockAlertRepository puerto de persistencia de alertas de stock.
type StockAlertRepository interface {
	Create(a *entity.StockAlert) error
	// HasUnread indica si ya existe una alerta no leída del mismo tipo para el
	// producto (supresión de alertas abiertas duplicadas).
	HasUnread(productID, kind string) (bool, error)
	ListUnread(limit, offset int) ([]*entity.StockAlert, error)
	MarkRead(id string) error
}
