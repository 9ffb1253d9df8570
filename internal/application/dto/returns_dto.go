package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsalazarc/Ventas-api/internal/application/returns"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
)

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	SaleID string                    `json:"sale_id" validate:"required"`
	Motive string                    `json:"motive" validate:"required,max=500"`
	Lines  []CreateReturnLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateReturnLineRequest línea solicitada.
type CreateReturnLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Motive    string `json:"motive" validate:"omitempty,max=500"`
}

// ApproveReturnRequest body para POST /api/returns/:id/approve.
type ApproveReturnRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// RejectReturnRequest body para POST /api/returns/:id/reject. El motivo es obligatorio.
type RejectReturnRequest struct {
	Motive string `json:"motive" validate:"required,max=500"`
}

// CompleteReturnRequest body para POST /api/returns/:id/complete.
type CompleteReturnRequest struct {
	Note string `json:"note" validate:"omitempty,max=500"`
}

// ReturnLineDTO línea de devolución en respuestas.
type ReturnLineDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Motive    string          `json:"motive,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReturnDTO devolución en respuestas.
type ReturnDTO struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	UserID       string          `json:"user_id"`
	Motive       string          `json:"motive"`
	State        string          `json:"state"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	AdminComment string          `json:"admin_comment,omitempty"`
	ReviewedBy   string          `json:"reviewed_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Lines        []ReturnLineDTO `json:"lines"`
}

// ToReturnDTO mapea la entidad al DTO de respuesta.
func ToReturnDTO(r *entity.Return) ReturnDTO {
	out := ReturnDTO{
		ID:           r.ID,
		SaleID:       r.SaleID,
		UserID:       r.UserID,
		Motive:       r.Motive,
		State:        r.State,
		RefundAmount: r.RefundAmount,
		AdminComment: r.AdminComment,
		ReviewedBy:   r.ReviewedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, ReturnLineDTO{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Motive:    l.Motive,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}

// DeadlineResponse respuesta de GET /api/returns/deadline.
type DeadlineResponse struct {
	SaleID        string    `json:"sale_id"`
	WithinWindow  bool      `json:"within_window"`
	SaleDate      time.Time `json:"sale_date"`
	DeadlineDate  time.Time `json:"deadline_date"`
	DaysRemaining int       `json:"days_remaining"`
}

// ToDeadlineResponse mapea el resultado del caso de uso.
func ToDeadlineResponse(d *returns.DeadlineInfo) DeadlineResponse {
	return DeadlineResponse{
		SaleID:        d.SaleID,
		WithinWindow:  d.WithinWindow,
		SaleDate:      d.SaleDate,
		DeadlineDate:  d.DeadlineDate,
		DaysRemaining: d.DaysRemaining,
	}
}

// QuantityCheckResponse respuesta de GET /api/returns/availability.
type QuantityCheckResponse struct {
	SaleID          string `json:"sale_id"`
	ProductID       string `json:"product_id"`
	Valid           bool   `json:"valid"`
	Sold            int64  `json:"sold"`
	AlreadyReturned int64  `json:"already_returned"`
	Available       int64  `json:"available"`
	Requested       int64  `json:"requested"`
}

// ToQuantityCheckResponse mapea el resultado del caso de uso.
func ToQuantityCheckResponse(q *returns.QuantityInfo) QuantityCheckResponse {
	return QuantityCheckResponse{
		SaleID:          q.SaleID,
		ProductID:       q.ProductID,
		Valid:           q.Valid,
		Sold:            q.Sold,
		AlreadyReturned: q.AlreadyReturned,
		Available:       q.Available,
		Requested:       q.Requested,
	}
}
