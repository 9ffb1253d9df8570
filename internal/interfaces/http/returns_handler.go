package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsalazarc/Ventas-api/internal/application/dto"
	"github.com/jsalazarc/Ventas-api/internal/application/returns"
)

// ReturnsHandler maneja las peticiones HTTP del flujo de devoluciones (protegido).
type ReturnsHandler struct {
	uc *returns.ReturnsUseCase
}

// NewReturnsHandler construye el handler.
func NewReturnsHandler(uc *returns.ReturnsUseCase) *ReturnsHandler {
	return &ReturnsHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar una devolución sobre una venta
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "sale_id, motive, lines"
// @Success      201   {object}  dto.ReturnDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnsHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReturnRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	input := returns.CreateReturnInput{SaleID: in.SaleID, UserID: userID, Motive: in.Motive}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, returns.CreateReturnLineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Motive:    l.Motive,
		})
	}
	created, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReturnDTO(created))
}

// Approve godoc
// @Summary      Aprobar una devolución pendiente (solo admin)
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la devolución"
// @Param        body  body  dto.ApproveReturnRequest  false  "comment"
// @Success      200   {object}  dto.ReturnDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/approve [post]
func (h *ReturnsHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	// Body opcional: sin comment es una aprobación sin observaciones.
	var in dto.ApproveReturnRequest
	_ = c.BodyParser(&in)
	updated, err := h.uc.Approve(c.Context(), c.Params("id"), userID, in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReturnDTO(updated))
}

// Reject godoc
// @Summary      Rechazar una devolución (solo admin)
// @Description  El motivo es obligatorio. Las cantidades de una devolución
//
//	rechazada dejan de contar contra la disponibilidad de la venta.
//
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la devolución"
// @Param        body  body  dto.RejectReturnRequest  true  "motive"
// @Success      200   {object}  dto.ReturnDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/reject [post]
func (h *ReturnsHandler) Reject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RejectReturnRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	updated, err := h.uc.Reject(c.Context(), c.Params("id"), userID, in.Motive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReturnDTO(updated))
}

// Complete godoc
// @Summary      Completar una devolución aprobada (solo admin)
// @Description  Postea un movimiento DEVOLUCION por línea en una sola
//
//	transacción; si alguna línea falla, nada se postea.
//
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la devolución"
// @Param        body  body  dto.CompleteReturnRequest  false  "note"
// @Success      200   {object}  dto.ReturnDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/complete [post]
func (h *ReturnsHandler) Complete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	// Body opcional.
	var in dto.CompleteReturnRequest
	_ = c.BodyParser(&in)
	updated, err := h.uc.Complete(c.Context(), c.Params("id"), userID, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReturnDTO(updated))
}

// GetByID godoc
// @Summary      Consultar una devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnsHandler) GetByID(c *fiber.Ctx) error {
	ret, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReturnDTO(ret))
}

// ListBySale godoc
// @Summary      Listar las devoluciones de una venta
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        sale_id  query  string  true  "ID de la venta"
// @Success      200  {array}   dto.ReturnDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns [get]
func (h *ReturnsHandler) ListBySale(c *fiber.Ctx) error {
	saleID := c.Query("sale_id")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sale_id requerido"})
	}
	list, err := h.uc.ListBySale(c.Context(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReturnDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToReturnDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "returns": out})
}

// VerifyDeadline godoc
// @Summary      Verificar la ventana de devolución de una venta
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.DeadlineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/return-deadline [get]
func (h *ReturnsHandler) VerifyDeadline(c *fiber.Ctx) error {
	info, err := h.uc.VerifyDeadline(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDeadlineResponse(info))
}

// CheckAvailability godoc
// @Summary      Pre-validar una cantidad a devolver
// @Description  Devuelve vendido, ya comprometido en devoluciones no rechazadas
//
//	y disponible para el producto dentro de la venta.
//
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID de la venta"
// @Param        product_id  query  string  true   "ID del producto"
// @Param        quantity    query  int     false  "Cantidad a validar"
// @Success      200  {object}  dto.QuantityCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/return-availability [get]
func (h *ReturnsHandler) CheckAvailability(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	requested := int64(c.QueryInt("quantity", 0))
	info, err := h.uc.ValidateQuantity(c.Context(), c.Params("id"), productID, requested)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToQuantityCheckResponse(info))
}
