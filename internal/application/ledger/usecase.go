package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	domledger "github.com/jsalazarc/Ventas-api/internal/domain/ledger"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
	"github.com/jsalazarc/Ventas-api/pkg/logger"
)

// Reintentos internos ante conflictos transitorios de serialización; los
// fallos de regla de negocio nunca se reintentan.
const (
	maxConflictRetries = 3
	conflictBackoff    = 25 * time.Millisecond
)

// StockLedgerUseCase registra movimientos de inventario de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), aplica la regla del tipo de
// movimiento y confirma movimiento + stock en el mismo Commit. Cada tipo se
// expone como operación separada para que AJUSTE (stock objetivo absoluto) no
// se confunda con los deltas de ENTRADA/SALIDA.
type StockLedgerUseCase struct {
	txRunner  TxRunner
	alertRepo repository.StockAlertRepository
	log       *logger.Logger
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, alertRepo repository.StockAlertRepository, log *logger.Logger) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, alertRepo: alertRepo, log: log}
}

// EntradaInput ingreso de mercancía.
type EntradaInput struct {
	ProductID string
	Quantity  int64
	UserID    string
	Note      string
}

// SalidaInput venta o retiro de unidades. SaleID enlaza la salida con la venta
// que la originó, cuando aplica.
type SalidaInput struct {
	ProductID string
	Quantity  int64
	UserID    string
	SaleID    *string
	Note      string
}

// AjusteInput fija el stock en TargetStock (valor absoluto, no delta).
// Operación privilegiada: el llamador debe haber pasado por RequireRole admin.
type AjusteInput struct {
	ProductID   string
	TargetStock int64
	UserID      string
	Note        string
}

// MovementResult movimiento confirmado y stock resultante.
type MovementResult struct {
	Movement *entity.InventoryMovement
	NewStock int64
}

// RegisterEntrada registra un ingreso: newStock = stockAnterior + cantidad.
func (uc *StockLedgerUseCase) RegisterEntrada(ctx context.Context, in EntradaInput) (*MovementResult, error) {
	return uc.apply(ctx, entity.MovementTypeEntrada, in.ProductID, in.Quantity, in.UserID, nil, in.Note)
}

// RegisterSalida registra una salida: newStock = stockAnterior - cantidad.
// Falla con InsufficientStock si la cantidad supera el stock actual.
func (uc *StockLedgerUseCase) RegisterSalida(ctx context.Context, in SalidaInput) (*MovementResult, error) {
	return uc.apply(ctx, entity.MovementTypeSalida, in.ProductID, in.Quantity, in.UserID, in.SaleID, in.Note)
}

// AjustarStock fija el stock del producto exactamente en TargetStock y registra
// un movimiento AJUSTE cuyo antes/después refleja la transición.
func (uc *StockLedgerUseCase) AjustarStock(ctx context.Context, in AjusteInput) (*MovementResult, error) {
	return uc.apply(ctx, entity.MovementTypeAjuste, in.ProductID, in.TargetStock, in.UserID, nil, in.Note)
}

// apply valida, confirma el movimiento dentro de una transacción con reintento
// acotado ante conflictos de concurrencia y dispara la evaluación de alertas
// tras el commit.
func (uc *StockLedgerUseCase) apply(
	ctx context.Context,
	movType, productID string,
	quantity int64,
	userID string,
	saleID *string,
	note string,
) (*MovementResult, error) {
	if productID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := domledger.ValidateMovement(movType, quantity); err != nil {
		return nil, err
	}

	var result *MovementResult
	var snapshot *entity.Product
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * conflictBackoff)
			uc.log.Warn().
				Str("product_id", productID).
				Str("type", movType).
				Int("attempt", attempt).
				Msg("reintentando movimiento por conflicto de concurrencia")
		}
		result, snapshot, err = uc.applyOnce(ctx, movType, productID, quantity, userID, saleID, note)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", result.Movement.ID).
		Str("product_id", productID).
		Str("type", movType).
		Int64("quantity", quantity).
		Int64("stock_before", result.Movement.StockBefore).
		Int64("stock_after", result.Movement.StockAfter).
		Msg("movimiento de inventario registrado")

	// Efecto de notificación, nunca bloquea ni revierte el movimiento ya confirmado.
	uc.TriggerAlert(snapshot)
	return result, nil
}

func (uc *StockLedgerUseCase) applyOnce(
	ctx context.Context,
	movType, productID string,
	quantity int64,
	userID string,
	saleID *string,
	note string,
) (*MovementResult, *entity.Product, error) {
	var result *MovementResult
	var snapshot *entity.Product

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, product, err := registerMovement(movRepo, productRepo, movType, productID, quantity, userID, saleID, note, time.Now())
		if err != nil {
			return err
		}
		result = &MovementResult{Movement: mov, NewStock: mov.StockAfter}
		snapshot = product
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, snapshot, nil
}

// registerMovement es el camino común de commit: bloquea la fila del producto,
// calcula el stock resultante con la política pura, escribe el nuevo stock y
// persiste el movimiento en el mismo contexto transaccional.
func registerMovement(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	movType, productID string,
	quantity int64,
	userID string,
	saleID *string,
	note string,
	now time.Time,
) (*entity.InventoryMovement, *entity.Product, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	newStock, err := domledger.ComputeStock(productID, movType, product.Stock, quantity)
	if err != nil {
		return nil, nil, err
	}
	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return nil, nil, err
	}

	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Type:        movType,
		Quantity:    quantity,
		StockBefore: product.Stock,
		StockAfter:  newStock,
		Date:        now,
		CreatedBy:   userID,
		SaleID:      saleID,
		Note:        note,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}

	product.Stock = newStock
	return mov, product, nil
}

// RegisterSalidaInTx ejecuta una SALIDA con los repositorios del caller (misma
// transacción), para que el commit de una venta registre sus líneas y aborte
// completo si alguna falla. Devuelve el producto con el stock ya actualizado
// para evaluar alertas tras el commit del caller.
func (uc *StockLedgerUseCase) RegisterSalidaInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int64,
	userID, saleID, note string,
	now time.Time,
) (*entity.InventoryMovement, *entity.Product, error) {
	if err := domledger.ValidateMovement(entity.MovementTypeSalida, quantity); err != nil {
		return nil, nil, err
	}
	return registerMovement(movRepo, productRepo, entity.MovementTypeSalida, productID, quantity, userID, &saleID, note, now)
}

// RegisterDevolucionInTx ejecuta una DEVOLUCION con los repositorios del caller
// (misma transacción). Lo usa el flujo de devoluciones en la transición a
// COMPLETADA: todas las líneas postean en una sola transacción o ninguna lo hace.
func (uc *StockLedgerUseCase) RegisterDevolucionInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int64,
	userID, saleID, note string,
	now time.Time,
) (*entity.InventoryMovement, *entity.Product, error) {
	if err := domledger.ValidateMovement(entity.MovementTypeDevolucion, quantity); err != nil {
		return nil, nil, err
	}
	return registerMovement(movRepo, productRepo, entity.MovementTypeDevolucion, productID, quantity, userID, &saleID, note, now)
}

// TriggerAlert evalúa el stock del producto contra sus umbrales y persiste una
// alerta si corresponde, salvo que ya exista una no leída del mismo tipo. Los
// errores aquí solo se loguean: la alerta es notificación, no compuerta.
func (uc *StockLedgerUseCase) TriggerAlert(product *entity.Product) {
	if product == nil {
		return
	}
	urgency := domledger.ClassifyUrgency(product.Stock, product.MinStock)
	if !domledger.ShouldAlert(urgency) {
		return
	}
	exists, err := uc.alertRepo.HasUnread(product.ID, entity.AlertKindStockBajo)
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("consulta de alertas abiertas falló")
		return
	}
	if exists {
		return
	}
	alert := &entity.StockAlert{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Kind:      entity.AlertKindStockBajo,
		Urgency:   urgency,
		Stock:     product.Stock,
		MinStock:  product.MinStock,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := uc.alertRepo.Create(alert); err != nil {
		uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("persistencia de alerta falló")
		return
	}
	uc.log.Info().
		Str("alert_id", alert.ID).
		Str("product_id", product.ID).
		Str("urgency", urgency).
		Int64("stock", product.Stock).
		Msg("alerta de stock emitida")
}
