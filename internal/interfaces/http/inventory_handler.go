package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsalazarc/Ventas-api/internal/application/dto"
	"github.com/jsalazarc/Ventas-api/internal/application/ledger"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	ledgerUC *ledger.StockLedgerUseCase
	kardexUC *ledger.KardexUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerUC *ledger.StockLedgerUseCase, kardexUC *ledger.KardexUseCase) *InventoryHandler {
	return &InventoryHandler{ledgerUC: ledgerUC, kardexUC: kardexUC}
}

// RegisterEntrada godoc
// @Summary      Registrar ingreso de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entradas [post]
func (h *InventoryHandler) RegisterEntrada(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.EntradaRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	result, err := h.ledgerUC.RegisterEntrada(c.Context(), ledger.EntradaInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    userID,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(result))
}

// RegisterSalida godoc
// @Summary      Registrar salida de unidades
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaRequest  true  "product_id, quantity, sale_id (opcional), note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/salidas [post]
func (h *InventoryHandler) RegisterSalida(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SalidaRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	result, err := h.ledgerUC.RegisterSalida(c.Context(), ledger.SalidaInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    userID,
		SaleID:    in.SaleID,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(result))
}

// AjustarStock godoc
// @Summary      Fijar el stock en un valor absoluto (solo admin)
// @Description  Registra un movimiento AJUSTE cuyo antes/después refleja la
//
//	transición al valor objetivo. target_stock no es un delta.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "product_id, target_stock, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/ajustes [post]
func (h *InventoryHandler) AjustarStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AjusteRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	result, err := h.ledgerUC.AjustarStock(c.Context(), ledger.AjusteInput{
		ProductID:   in.ProductID,
		TargetStock: in.TargetStock,
		UserID:      userID,
		Note:        in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(result))
}

// GetKardex godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Tamaño de página (defecto 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/kardex [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movements, total, err := h.kardexUC.GetKardex(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.KardexResponse{
		ProductID: productID,
		Movements: make([]dto.MovementDTO, 0, len(movements)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.ToMovementDTO(m))
	}
	return c.JSON(out)
}

// AuditProduct godoc
// @Summary      Verificar consistencia del libro de un producto
// @Description  Reproduce todos los movimientos desde stock 0 y compara el
//
//	resultado con el stock almacenado.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/audit [get]
func (h *InventoryHandler) AuditProduct(c *fiber.Ctx) error {
	result, err := h.kardexUC.AuditProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AuditResponse{
		ProductID:     result.ProductID,
		Movements:     result.Movements,
		ReplayedStock: result.ReplayedStock,
		CurrentStock:  result.CurrentStock,
		Consistent:    result.Consistent,
	})
}
