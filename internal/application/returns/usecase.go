package returns

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/jsalazarc/Ventas-api/internal/application/ledger"
	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	domreturns "github.com/jsalazarc/Ventas-api/internal/domain/returns"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
	"github.com/jsalazarc/Ventas-api/pkg/logger"
)

// Longitud máxima del motivo de una solicitud o rechazo.
const maxMotiveLen = 500

// ReturnsUseCase maneja el ciclo de vida de las devoluciones:
// solicitud (PENDIENTE) → aprobación/rechazo → completado, validando las
// cantidades contra lo vendido y posteando los reingresos al libro de
// inventario solo en la transición final.
type ReturnsUseCase struct {
	txRunner   TxRunner
	saleRepo   repository.SaleRepository
	returnRepo repository.ReturnRepository
	ledger     *ledgerapp.StockLedgerUseCase
	windowDays int
	log        *logger.Logger
}

// NewReturnsUseCase construye el caso de uso. windowDays es la ventana fija de
// devolución en días desde la fecha de venta.
func NewReturnsUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	ledger *ledgerapp.StockLedgerUseCase,
	windowDays int,
	log *logger.Logger,
) *ReturnsUseCase {
	return &ReturnsUseCase{
		txRunner:   txRunner,
		saleRepo:   saleRepo,
		returnRepo: returnRepo,
		ledger:     ledger,
		windowDays: windowDays,
		log:        log,
	}
}

// CreateReturnInput solicitud de devolución sobre una venta.
type CreateReturnInput struct {
	SaleID string
	UserID string
	Motive string
	Lines  []CreateReturnLineInput
}

// CreateReturnLineInput línea solicitada: producto y cantidad a devolver.
type CreateReturnLineInput struct {
	ProductID string
	Quantity  int64
	Motive    string
}

// Create valida y persiste una solicitud de devolución en PENDIENTE.
// Por cada línea: disponible = vendido − ya solicitado en devoluciones no
// rechazadas de la venta; falla con InvalidQuantity si se excede. Falla con
// DeadlineExceeded si la venta quedó fuera de la ventana. Los precios
// unitarios se capturan de la venta en este momento.
func (uc *ReturnsUseCase) Create(ctx context.Context, in CreateReturnInput) (*entity.Return, error) {
	if in.SaleID == "" || in.UserID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Motive == "" || len(in.Motive) > maxMotiveLen {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	var created *entity.Return
	err := uc.txRunner.RunReturns(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
	) error {
		// Bloquea la venta: dos solicitudes simultáneas sobre la misma venta
		// no deben pasar ambas la validación de disponibilidad.
		sale, err := saleRepo.GetForUpdate(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		deadline := uc.deadlineFor(sale)
		if now.After(deadline) {
			return &domain.DeadlineExceededError{SaleID: sale.ID, SaleDate: sale.Date, Deadline: deadline}
		}

		ret := &entity.Return{
			ID:           uuid.New().String(),
			SaleID:       sale.ID,
			UserID:       in.UserID,
			Motive:       in.Motive,
			State:        entity.ReturnStatePendiente,
			RefundAmount: decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		// Cantidades ya pedidas dentro de esta misma solicitud, por si un
		// producto aparece en más de una línea.
		requestedHere := make(map[string]int64, len(in.Lines))
		for _, line := range in.Lines {
			sold := sale.QuantitySold(line.ProductID)
			returned, err := returnRepo.SumRequestedByProduct(sale.ID, line.ProductID)
			if err != nil {
				return err
			}
			available := sold - returned - requestedHere[line.ProductID]
			if line.Quantity > available {
				return &domain.InvalidQuantityError{
					ProductID: line.ProductID,
					Sold:      sold,
					Returned:  returned + requestedHere[line.ProductID],
					Available: max64(available, 0),
					Requested: line.Quantity,
				}
			}
			requestedHere[line.ProductID] += line.Quantity

			saleLine := sale.LineFor(line.ProductID)
			subtotal := saleLine.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
			ret.Lines = append(ret.Lines, entity.ReturnLine{
				ID:        uuid.New().String(),
				ReturnID:  ret.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Motive:    line.Motive,
				UnitPrice: saleLine.UnitPrice,
				Subtotal:  subtotal,
			})
			ret.RefundAmount = ret.RefundAmount.Add(subtotal)
		}

		if err := returnRepo.Create(ret); err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("return_id", created.ID).
		Str("sale_id", created.SaleID).
		Int("lines", len(created.Lines)).
		Str("refund", created.RefundAmount.String()).
		Msg("devolución solicitada")
	return created, nil
}

// Approve mueve la devolución de PENDIENTE a APROBADA. No toca stock.
func (uc *ReturnsUseCase) Approve(ctx context.Context, returnID, userID, comment string) (*entity.Return, error) {
	return uc.transition(ctx, returnID, userID, entity.ReturnStateAprobada, comment)
}

// Reject mueve la devolución a RECHAZADA desde PENDIENTE o APROBADA; el motivo
// es obligatorio. No toca stock: las devoluciones rechazadas dejan de contar
// contra la disponibilidad de futuras solicitudes sobre la misma venta.
func (uc *ReturnsUseCase) Reject(ctx context.Context, returnID, userID, motive string) (*entity.Return, error) {
	if motive == "" || len(motive) > maxMotiveLen {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, returnID, userID, entity.ReturnStateRechazada, motive)
}

// transition aplica un cambio de estado simple (sin efectos sobre el libro),
// serializado por el bloqueo de la fila de la devolución. userID queda
// registrado como revisor de la transición.
func (uc *ReturnsUseCase) transition(ctx context.Context, returnID, userID, target, comment string) (*entity.Return, error) {
	if returnID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Return
	err := uc.txRunner.RunReturns(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		_ repository.SaleRepository,
		returnRepo repository.ReturnRepository,
	) error {
		ret, err := returnRepo.GetForUpdate(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if !domreturns.CanTransition(ret.State, target) {
			return &domain.IllegalTransitionError{ReturnID: returnID, From: ret.State, To: target}
		}
		if err := returnRepo.UpdateState(returnID, target, comment, userID); err != nil {
			return err
		}
		ret.State = target
		ret.AdminComment = comment
		ret.ReviewedBy = userID
		updated = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("return_id", updated.ID).
		Str("state", updated.State).
		Msg("transición de devolución aplicada")
	return updated, nil
}

// Complete mueve la devolución de APROBADA a COMPLETADA posteando un
// movimiento DEVOLUCION por línea en una sola transacción. Si cualquier línea
// falla, nada se postea y la devolución queda en APROBADA. Las filas de
// producto se bloquean en orden ascendente de identidad para evitar deadlocks
// entre completados que comparten productos.
func (uc *ReturnsUseCase) Complete(ctx context.Context, returnID, userID, note string) (*entity.Return, error) {
	if returnID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Return
	var snapshots []*entity.Product
	err := uc.txRunner.RunReturns(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		returnRepo repository.ReturnRepository,
	) error {
		ret, err := returnRepo.GetForUpdate(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if !domreturns.CanTransition(ret.State, entity.ReturnStateCompletada) {
			return &domain.IllegalTransitionError{ReturnID: returnID, From: ret.State, To: entity.ReturnStateCompletada}
		}

		// Orden de bloqueo consistente entre todos los call sites.
		lines := make([]entity.ReturnLine, len(ret.Lines))
		copy(lines, ret.Lines)
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

		now := time.Now()
		snapshots = snapshots[:0]
		for _, line := range lines {
			_, product, err := uc.ledger.RegisterDevolucionInTx(
				movRepo, productRepo, line.ProductID, line.Quantity, userID, ret.SaleID, note, now)
			if err != nil {
				return err
			}
			snapshots = append(snapshots, product)
		}

		if err := returnRepo.UpdateState(returnID, entity.ReturnStateCompletada, note, userID); err != nil {
			return err
		}
		ret.State = entity.ReturnStateCompletada
		ret.AdminComment = note
		ret.ReviewedBy = userID
		updated = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("return_id", updated.ID).
		Str("sale_id", updated.SaleID).
		Int("lines", len(updated.Lines)).
		Msg("devolución completada, stock reingresado")

	// Evaluación de alertas tras el commit, una por producto afectado.
	for _, p := range snapshots {
		uc.ledger.TriggerAlert(p)
	}
	return updated, nil
}

// GetByID devuelve la devolución con sus líneas.
func (uc *ReturnsUseCase) GetByID(ctx context.Context, returnID string) (*entity.Return, error) {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return ret, nil
}

// ListBySale devuelve todas las devoluciones presentadas contra una venta.
func (uc *ReturnsUseCase) ListBySale(ctx context.Context, saleID string) ([]*entity.Return, error) {
	return uc.returnRepo.ListBySale(saleID)
}

// DeadlineInfo resultado de verificar la ventana de devolución de una venta.
type DeadlineInfo struct {
	SaleID        string
	WithinWindow  bool
	SaleDate      time.Time
	DeadlineDate  time.Time
	DaysRemaining int
}

// VerifyDeadline lectura pura: indica si la venta sigue dentro de la ventana
// de devolución, sin importar el estado de ninguna solicitud.
func (uc *ReturnsUseCase) VerifyDeadline(ctx context.Context, saleID string) (*DeadlineInfo, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	deadline := uc.deadlineFor(sale)
	remaining := int(deadline.Sub(now).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return &DeadlineInfo{
		SaleID:        sale.ID,
		WithinWindow:  !now.After(deadline),
		SaleDate:      sale.Date,
		DeadlineDate:  deadline,
		DaysRemaining: remaining,
	}, nil
}

// QuantityInfo resultado de pre-validar una cantidad a devolver.
type QuantityInfo struct {
	SaleID          string
	ProductID       string
	Valid           bool
	Sold            int64
	AlreadyReturned int64
	Available       int64
	Requested       int64
}

// ValidateQuantity lectura pura: cuánto se vendió, cuánto está ya comprometido
// en devoluciones no rechazadas y cuánto queda disponible. Permite a los
// callers pre-validar antes de enviar la solicitud.
func (uc *ReturnsUseCase) ValidateQuantity(ctx context.Context, saleID, productID string, requested int64) (*QuantityInfo, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	sold := sale.QuantitySold(productID)
	returned, err := uc.returnRepo.SumRequestedByProduct(saleID, productID)
	if err != nil {
		return nil, err
	}
	available := max64(sold-returned, 0)
	return &QuantityInfo{
		SaleID:          saleID,
		ProductID:       productID,
		Valid:           requested >= 1 && requested <= available,
		Sold:            sold,
		AlreadyReturned: returned,
		Available:       available,
		Requested:       requested,
	}, nil
}

func (uc *ReturnsUseCase) deadlineFor(sale *entity.Sale) time.Time {
	return sale.Date.AddDate(0, 0, uc.windowDays)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
