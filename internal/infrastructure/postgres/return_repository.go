package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, sale_id, user_id, motive, state, refund_amount, admin_comment, reviewed_by, created_at, updated_at`

// Create persiste la devolución con sus líneas en un solo viaje lógico.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	query := `
		INSERT INTO returns (id, sale_id, user_id, motive, state, refund_amount, admin_comment, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SaleID, ret.UserID, ret.Motive, ret.State, ret.RefundAmount, ret.AdminComment, ret.ReviewedBy)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}

	lineQuery := `
		INSERT INTO return_lines (id, return_id, product_id, quantity, motive, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range ret.Lines {
		line := &ret.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.ReturnID = ret.ID
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.ReturnID, line.ProductID, line.Quantity, line.Motive, line.UnitPrice, line.Subtotal)
		if err != nil {
			return fmt.Errorf("create return line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la devolución con sus líneas, o nil si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la fila de la devolución para serializar transiciones
// concurrentes sobre la misma solicitud.
func (r *ReturnRepo) GetForUpdate(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ReturnRepo) scanOne(query, id string) (*entity.Return, error) {
	var ret entity.Return
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.UserID, &ret.Motive, &ret.State,
		&ret.RefundAmount, &ret.AdminComment, &ret.ReviewedBy, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	lines, err := r.loadLines(ret.ID)
	if err != nil {
		return nil, err
	}
	ret.Lines = lines
	return &ret, nil
}

func (r *ReturnRepo) loadLines(returnID string) ([]entity.ReturnLine, error) {
	query := `
		SELECT id, return_id, product_id, quantity, motive, unit_price, subtotal
		FROM return_lines WHERE return_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.ReturnLine
	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(&l.ID, &l.ReturnID, &l.ProductID, &l.Quantity, &l.Motive, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan return line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateState escribe el nuevo estado, el comentario y la identidad del
// revisor. La validez de la transición ya la verificó el caso de uso bajo
// GetForUpdate.
func (r *ReturnRepo) UpdateState(id, state, comment, reviewedBy string) error {
	query := `UPDATE returns SET state = $2, admin_comment = $3, reviewed_by = $4, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, state, comment, reviewedBy)
	if err != nil {
		return fmt.Errorf("update return state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumRequestedByProduct suma lo solicitado del producto en las devoluciones no
// rechazadas de la venta. Las rechazadas liberan su cantidad.
func (r *ReturnRepo) SumRequestedByProduct(saleID, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(rl.quantity), 0)
		FROM return_lines rl
		JOIN returns ret ON ret.id = rl.return_id
		WHERE ret.sale_id = $1 AND rl.product_id = $2 AND ret.state <> $3`
	var total int64
	err := r.q.QueryRow(context.Background(), query, saleID, productID, entity.ReturnStateRechazada).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum requested quantity: %w", err)
	}
	return total, nil
}

// ListBySale lista las devoluciones de una venta, más recientes primero.
func (r *ReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE sale_id = $1 ORDER BY created_at DESC`
	return r.list(query, saleID)
}

// List lista devoluciones, opcionalmente filtradas por estado.
func (r *ReturnRepo) List(state string, limit, offset int) ([]*entity.Return, error) {
	if state != "" {
		query := `SELECT ` + returnColumns + ` FROM returns WHERE state = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		return r.list(query, state, limit, offset)
	}
	query := `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ReturnRepo) list(query string, args ...any) ([]*entity.Return, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.UserID, &ret.Motive, &ret.State,
			&ret.RefundAmount, &ret.AdminComment, &ret.ReviewedBy, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range list {
		lines, err := r.loadLines(ret.ID)
		if err != nil {
			return nil, err
		}
		ret.Lines = lines
	}
	return list, nil
}
