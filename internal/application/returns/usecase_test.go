package returns_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/jsalazarc/Ventas-api/internal/application/ledger"
	returnsapp "github.com/jsalazarc/Ventas-api/internal/application/returns"
	"github.com/jsalazarc/Ventas-api/internal/domain"
	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
	"github.com/jsalazarc/Ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con rollback: si fn falla, el estado vuelve al snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	returns   map[string]*entity.Return
	movements []*entity.InventoryMovement
	alerts    []*entity.StockAlert
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
		returns:  map[string]*entity.Return{},
	}
}

func (s *memStore) addProduct(id string, stock, minStock int64) {
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "producto " + id, Stock: stock, MinStock: minStock, Active: true}
}

// addSale registra una venta con una línea por cada par (producto, cantidad).
func (s *memStore) addSale(id string, date time.Time, lines map[string]int64) {
	sale := &entity.Sale{ID: id, UserID: "vendedor", Date: date}
	for productID, qty := range lines {
		price := decimal.NewFromInt(100)
		sub := price.Mul(decimal.NewFromInt(qty))
		sale.Lines = append(sale.Lines, entity.SaleLine{
			ID: id + "-" + productID, SaleID: id, ProductID: productID,
			Quantity: qty, UnitPrice: price, Subtotal: sub,
		})
		sale.Total = sale.Total.Add(sub)
	}
	s.sales[id] = sale
}

func (s *memStore) snapshot() (map[string]*entity.Product, map[string]*entity.Return, int) {
	products := make(map[string]*entity.Product, len(s.products))
	for k, v := range s.products {
		cp := *v
		products[k] = &cp
	}
	rets := make(map[string]*entity.Return, len(s.returns))
	for k, v := range s.returns {
		cp := *v
		cp.Lines = append([]entity.ReturnLine(nil), v.Lines...)
		rets[k] = &cp
	}
	return products, rets, len(s.movements)
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunReturns(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	products, rets, nMovs := s.snapshot()
	err := fn(&memMovementRepo{s: s}, &memProductRepo{s: s}, &memSaleRepo{s: s}, &memReturnRepo{s: s})
	if err != nil {
		s.products = products
		s.returns = rets
		s.movements = s.movements[:nMovs]
		return err
	}
	return nil
}

// memLedgerTxRunner adapta el mismo almacén al TxRunner del libro de inventario.
type memLedgerTxRunner struct{ store *memStore }

func (r *memLedgerTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	products, rets, nMovs := s.snapshot()
	if err := fn(&memMovementRepo{s: s}, &memProductRepo{s: s}); err != nil {
		s.products = products
		s.returns = rets
		s.movements = s.movements[:nMovs]
		return err
	}
	return nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProductRepo) UpdateStock(id string, stock int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	m.Seq = int64(len(r.s.movements) + 1)
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *memMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByProductAsc(productID string) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) CountByProduct(productID string) (int, error) { return 0, nil }

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return sale, nil
}
func (r *memSaleRepo) GetForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }

type memReturnRepo struct{ s *memStore }

func (r *memReturnRepo) Create(ret *entity.Return) error { r.s.returns[ret.ID] = ret; return nil }
func (r *memReturnRepo) GetByID(id string) (*entity.Return, error) {
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, nil
	}
	cp := *ret
	cp.Lines = append([]entity.ReturnLine(nil), ret.Lines...)
	return &cp, nil
}
func (r *memReturnRepo) GetForUpdate(id string) (*entity.Return, error) { return r.GetByID(id) }
func (r *memReturnRepo) UpdateState(id, state, comment, reviewedBy string) error {
	ret, ok := r.s.returns[id]
	if !ok {
		return domain.ErrNotFound
	}
	ret.State = state
	ret.AdminComment = comment
	ret.ReviewedBy = reviewedBy
	ret.UpdatedAt = time.Now()
	return nil
}
func (r *memReturnRepo) SumRequestedByProduct(saleID, productID string) (int64, error) {
	var total int64
	for _, ret := range r.s.returns {
		if ret.SaleID != saleID || ret.State == entity.ReturnStateRechazada {
			continue
		}
		for _, l := range ret.Lines {
			if l.ProductID == productID {
				total += l.Quantity
			}
		}
	}
	return total, nil
}
func (r *memReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	var list []*entity.Return
	for _, ret := range r.s.returns {
		if ret.SaleID == saleID {
			list = append(list, ret)
		}
	}
	return list, nil
}
func (r *memReturnRepo) List(state string, limit, offset int) ([]*entity.Return, error) {
	return nil, nil
}

type memAlertRepo struct{ s *memStore }

func (r *memAlertRepo) Create(a *entity.StockAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts = append(r.s.alerts, a)
	return nil
}
func (r *memAlertRepo) HasUnread(productID, kind string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.Kind == kind && !a.Read {
			return true, nil
		}
	}
	return false, nil
}
func (r *memAlertRepo) ListUnread(limit, offset int) ([]*entity.StockAlert, error) { return nil, nil }
func (r *memAlertRepo) MarkRead(id string) error                                   { return nil }

const windowDays = 30

func newUseCase(s *memStore) *returnsapp.ReturnsUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	ledgerUC := ledgerapp.NewStockLedgerUseCase(&memLedgerTxRunner{store: s}, &memAlertRepo{s: s}, log)
	return returnsapp.NewReturnsUseCase(
		&memTxRunner{store: s}, &memSaleRepo{s: s}, &memReturnRepo{s: s}, ledgerUC, windowDays, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SolicitudValidaQuedaPendiente(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -5), map[string]int64{"p1": 10})
	uc := newUseCase(s)

	ret, err := uc.Create(context.Background(), returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "producto defectuoso",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatePendiente, ret.State)
	require.Len(t, ret.Lines, 1)
	assert.Equal(t, int64(4), ret.Lines[0].Quantity)
	assert.True(t, ret.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)),
		"el precio unitario debe capturarse de la venta")
	assert.True(t, ret.RefundAmount.Equal(decimal.NewFromInt(400)),
		"el reembolso debe ser la suma de subtotales")
}

func TestCreate_Validaciones(t *testing.T) {
	s := newMemStore()
	s.addSale("v1", time.Now(), map[string]int64{"p1": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "v1", UserID: "u1", Motive: "",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo obligatorio")

	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "v1", UserID: "u1", Motive: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "líneas vacías")

	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "v1", UserID: "u1", Motive: "x",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad mínima 1")

	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "no-existe", UserID: "u1", Motive: "x",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "venta inexistente")
}

func TestCreate_CantidadSuperaDisponible(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10})
	uc := newUseCase(s)

	_, err := uc.Create(context.Background(), returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "sobra",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 11}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	var qtyErr *domain.InvalidQuantityError
	require.True(t, errors.As(err, &qtyErr))
	assert.Equal(t, int64(10), qtyErr.Sold)
	assert.Equal(t, int64(0), qtyErr.Returned)
	assert.Equal(t, int64(10), qtyErr.Available)
	assert.Equal(t, int64(11), qtyErr.Requested)
}

func TestCreate_DevolucionTotalAgotaYRechazoLibera(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -2), map[string]int64{"p1": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	// Primera solicitud por el total vendido: procede.
	first, err := uc.Create(ctx, returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "no era lo pedido",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	// Segunda solicitud por cualquier cantidad: disponible quedó en 0.
	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "otra",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	var qtyErr *domain.InvalidQuantityError
	require.True(t, errors.As(err, &qtyErr))
	assert.Equal(t, int64(0), qtyErr.Available)

	// Rechazar la primera: la disponibilidad vuelve a 10.
	_, err = uc.Reject(ctx, first.ID, "admin", "no procede")
	require.NoError(t, err)

	info, err := uc.ValidateQuantity(ctx, "v1", "p1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Available)
	assert.True(t, info.Valid)

	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "reintento",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 10}},
	})
	assert.NoError(t, err, "tras el rechazo la cantidad debe estar disponible de nuevo")
}

func TestCreate_VentanaDeDevolucion(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	uc := newUseCase(s)
	ctx := context.Background()
	lines := []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 1}}

	// A 31 días la ventana de 30 está vencida.
	s.addSale("vieja", time.Now().AddDate(0, 0, -31), map[string]int64{"p1": 5})
	_, err := uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "vieja", UserID: "u1", Motive: "tarde", Lines: lines})
	require.ErrorIs(t, err, domain.ErrDeadlineExceeded)

	var dlErr *domain.DeadlineExceededError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, "vieja", dlErr.SaleID)

	// A 29 días todavía procede.
	s.addSale("reciente", time.Now().AddDate(0, 0, -29), map[string]int64{"p1": 5})
	_, err = uc.Create(ctx, returnsapp.CreateReturnInput{SaleID: "reciente", UserID: "u1", Motive: "a tiempo", Lines: lines})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

func createPendiente(t *testing.T, uc *returnsapp.ReturnsUseCase, saleID string, qty int64) *entity.Return {
	t.Helper()
	ret, err := uc.Create(context.Background(), returnsapp.CreateReturnInput{
		SaleID: saleID, UserID: "u1", Motive: "motivo de prueba",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: qty}},
	})
	require.NoError(t, err)
	return ret
}

func TestTransiciones_FlujoFeliz(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 3, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	ret := createPendiente(t, uc, "v1", 4)

	approved, err := uc.Approve(ctx, ret.ID, "admin", "ok")
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStateAprobada, approved.State)
	assert.Equal(t, int64(3), s.products["p1"].Stock, "aprobar no debe tocar stock")

	completed, err := uc.Complete(ctx, ret.ID, "admin", "recibido en tienda")
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStateCompletada, completed.State)
	assert.Equal(t, int64(7), s.products["p1"].Stock, "completar debe reingresar las unidades")

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeDevolucion, mov.Type)
	assert.Equal(t, int64(4), mov.Quantity)
	require.NotNil(t, mov.SaleID)
	assert.Equal(t, "v1", *mov.SaleID)
}

func TestTransiciones_MatrizDeIlegales(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 100})
	uc := newUseCase(s)
	ctx := context.Background()

	// Desde PENDIENTE: Complete es ilegal.
	pendiente := createPendiente(t, uc, "v1", 1)
	_, err := uc.Complete(ctx, pendiente.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "PENDIENTE no llega directo a COMPLETADA")

	// Desde APROBADA: Approve es ilegal, Reject procede.
	aprobada := createPendiente(t, uc, "v1", 1)
	_, err = uc.Approve(ctx, aprobada.ID, "admin", "")
	require.NoError(t, err)
	_, err = uc.Approve(ctx, aprobada.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = uc.Reject(ctx, aprobada.ID, "admin", "cambio de opinión")
	assert.NoError(t, err, "APROBADA sí puede rechazarse")

	// Desde RECHAZADA (terminal): todo falla.
	_, err = uc.Approve(ctx, aprobada.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = uc.Reject(ctx, aprobada.ID, "admin", "x")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = uc.Complete(ctx, aprobada.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	// Desde COMPLETADA (terminal): todo falla.
	completada := createPendiente(t, uc, "v1", 1)
	_, err = uc.Approve(ctx, completada.ID, "admin", "")
	require.NoError(t, err)
	_, err = uc.Complete(ctx, completada.ID, "admin", "")
	require.NoError(t, err)
	_, err = uc.Approve(ctx, completada.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = uc.Reject(ctx, completada.ID, "admin", "x")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = uc.Complete(ctx, completada.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	var trErr *domain.IllegalTransitionError
	require.True(t, errors.As(err, &trErr))
	assert.Equal(t, entity.ReturnStateCompletada, trErr.From)
}

func TestTransiciones_RegistranRevisor(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	ret := createPendiente(t, uc, "v1", 2)
	assert.Empty(t, ret.ReviewedBy, "una solicitud recién creada no tiene revisor")

	approved, err := uc.Approve(ctx, ret.ID, "admin-1", "ok")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", approved.ReviewedBy)
	assert.Equal(t, "admin-1", s.returns[ret.ID].ReviewedBy, "el revisor debe persistirse")

	completed, err := uc.Complete(ctx, ret.ID, "admin-2", "recibido")
	require.NoError(t, err)
	assert.Equal(t, "admin-2", completed.ReviewedBy, "cada transición registra a quien la aplicó")

	rejected := createPendiente(t, uc, "v1", 1)
	out, err := uc.Reject(ctx, rejected.ID, "admin-3", "no procede")
	require.NoError(t, err)
	assert.Equal(t, "admin-3", out.ReviewedBy)

	// Sin identidad de usuario la transición no procede.
	otra := createPendiente(t, uc, "v1", 1)
	_, err = uc.Approve(ctx, otra.ID, "", "ok")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReject_MotivoObligatorio(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10})
	uc := newUseCase(s)

	ret := createPendiente(t, uc, "v1", 1)
	_, err := uc.Reject(context.Background(), ret.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_TodoONada(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 5, 0)
	// p2 existe en la venta pero no en productos: la segunda línea fallará en el libro.
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10, "p2": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	ret, err := uc.Create(ctx, returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "dos líneas",
		Lines: []returnsapp.CreateReturnLineInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)
	_, err = uc.Approve(ctx, ret.ID, "admin", "")
	require.NoError(t, err)

	_, err = uc.Complete(ctx, ret.ID, "admin", "")
	require.Error(t, err, "la línea sin producto debe hacer fallar el completado")

	// Nada se posteó y la devolución sigue APROBADA.
	assert.Empty(t, s.movements, "no debe quedar ningún movimiento")
	assert.Equal(t, int64(5), s.products["p1"].Stock, "la primera línea debe revertirse")
	current, err := uc.GetByID(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStateAprobada, current.State)

	// El completado puede reintentarse una vez resuelta la causa.
	s.addProduct("p2", 0, 0)
	_, err = uc.Complete(ctx, ret.ID, "admin", "")
	require.NoError(t, err)
	assert.Len(t, s.movements, 2)
	assert.Equal(t, int64(7), s.products["p1"].Stock)
	assert.Equal(t, int64(3), s.products["p2"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas puras
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyDeadline(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)
	ctx := context.Background()

	s.addSale("v1", time.Now().AddDate(0, 0, -10), map[string]int64{"p1": 1})
	info, err := uc.VerifyDeadline(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, info.WithinWindow)
	assert.Equal(t, 19, info.DaysRemaining, "a 10 días de una ventana de 30 quedan 19 días completos")

	s.addSale("v2", time.Now().AddDate(0, 0, -40), map[string]int64{"p1": 1})
	info, err = uc.VerifyDeadline(ctx, "v2")
	require.NoError(t, err)
	assert.False(t, info.WithinWindow)
	assert.Equal(t, 0, info.DaysRemaining)

	_, err = uc.VerifyDeadline(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateQuantity(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", 0, 0)
	s.addSale("v1", time.Now().AddDate(0, 0, -1), map[string]int64{"p1": 10})
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.Create(ctx, returnsapp.CreateReturnInput{
		SaleID: "v1", UserID: "u1", Motive: "parcial",
		Lines: []returnsapp.CreateReturnLineInput{{ProductID: "p1", Quantity: 6}},
	})
	require.NoError(t, err)

	info, err := uc.ValidateQuantity(ctx, "v1", "p1", 4)
	require.NoError(t, err)
	assert.True(t, info.Valid)
	assert.Equal(t, int64(10), info.Sold)
	assert.Equal(t, int64(6), info.AlreadyReturned)
	assert.Equal(t, int64(4), info.Available)

	info, err = uc.ValidateQuantity(ctx, "v1", "p1", 5)
	require.NoError(t, err)
	assert.False(t, info.Valid, "pedir 5 con 4 disponibles no es válido")

	// Producto que no está en la venta: vendido 0, nada disponible.
	info, err = uc.ValidateQuantity(ctx, "v1", "p9", 1)
	require.NoError(t, err)
	assert.False(t, info.Valid)
	assert.Equal(t, int64(0), info.Sold)
}
