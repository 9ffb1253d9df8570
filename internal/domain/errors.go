package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas). Los casos que llevan datos
// adicionales usan structs tipados que hacen Unwrap hacia estos centinelas,
// de modo que los handlers puedan clasificar con errors.Is y extraer con errors.As.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidQuantity     = errors.New("cantidad solicitada supera lo disponible")
	ErrDeadlineExceeded    = errors.New("plazo de devolución vencido")
	ErrIllegalTransition   = errors.New("transición de estado no permitida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")
)

// InsufficientStockError indica que una SALIDA pide más unidades de las disponibles.
type InsufficientStockError struct {
	ProductID string
	Stock     int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidQuantityError indica que una devolución pide más unidades de las que
// quedan por devolver de la venta (vendido menos ya solicitado en devoluciones no rechazadas).
type InvalidQuantityError struct {
	ProductID string
	Sold      int64
	Returned  int64
	Available int64
	Requested int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("cantidad inválida para producto %s: vendido %d, ya devuelto %d, disponible %d, solicitado %d",
		e.ProductID, e.Sold, e.Returned, e.Available, e.Requested)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// DeadlineExceededError indica que la venta quedó fuera de la ventana de devolución.
type DeadlineExceededError struct {
	SaleID   string
	SaleDate time.Time
	Deadline time.Time
}

func (e *DeadlineExceededError) Error() string {
	return fmt.Sprintf("plazo de devolución vencido para venta %s: venta %s, límite %s",
		e.SaleID, e.SaleDate.Format("2006-01-02"), e.Deadline.Format("2006-01-02"))
}

func (e *DeadlineExceededError) Unwrap() error { return ErrDeadlineExceeded }

// IllegalTransitionError indica una operación del flujo de devoluciones
// intentada desde un estado que no la permite.
type IllegalTransitionError struct {
	ReturnID string
	From     string
	To       string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transición no permitida para devolución %s: %s → %s", e.ReturnID, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }
