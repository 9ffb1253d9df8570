package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// Create persiste una alerta de stock. Si ya existe una alerta abierta del
// mismo tipo para el producto, el índice único parcial rechaza el insert y el
// duplicado se trata como benigno: otra evaluación concurrente ganó la carrera.
func (r *StockAlertRepo) Create(a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, product_id, kind, urgency, stock, min_stock, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, now())`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductID, a.Kind, a.Urgency, a.Stock, a.MinStock)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("create stock alert: %w", err)
	}
	return nil
}

// HasUnread indica si ya hay una alerta abierta del mismo tipo para el producto.
func (r *StockAlertRepo) HasUnread(productID, kind string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM stock_alerts WHERE product_id = $1 AND kind = $2 AND NOT read)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, productID, kind).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check unread alert: %w", err)
	}
	return exists, nil
}

// ListUnread lista las alertas no leídas, más urgentes y recientes primero.
func (r *StockAlertRepo) ListUnread(limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, product_id, kind, urgency, stock, min_stock, read, created_at
		FROM stock_alerts WHERE NOT read
		ORDER BY CASE urgency WHEN 'CRITICO' THEN 0 WHEN 'ALTO' THEN 1 ELSE 2 END, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list unread alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Kind, &a.Urgency, &a.Stock,
			&a.MinStock, &a.Read, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca la alerta como leída; la siguiente caída del stock vuelve a alertar.
func (r *StockAlertRepo) MarkRead(id string) error {
	query := `UPDATE stock_alerts SET read = true WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
