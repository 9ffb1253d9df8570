package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsalazarc/Ventas-api/internal/application/dto"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

// AlertsHandler maneja las peticiones HTTP de alertas de stock (protegido).
type AlertsHandler struct {
	alertRepo repository.StockAlertRepository
}

// NewAlertsHandler construye el handler. Las alertas son lecturas directas del
// repositorio; no hay reglas adicionales que justifiquen un caso de uso propio.
func NewAlertsHandler(alertRepo repository.StockAlertRepository) *AlertsHandler {
	return &AlertsHandler{alertRepo: alertRepo}
}

// ListUnread godoc
// @Summary      Listar alertas de stock no leídas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (defecto 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.StockAlertDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertsHandler) ListUnread(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	alerts, err := h.alertRepo.ListUnread(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.ToStockAlertDTO(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// MarkRead godoc
// @Summary      Marcar una alerta como leída
// @Description  Una vez leída, la siguiente caída del stock del producto vuelve
//
//	a generar alerta.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [put]
func (h *AlertsHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.alertRepo.MarkRead(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta marcada como leída"})
}
