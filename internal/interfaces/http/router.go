package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsalazarc/Ventas-api/internal/application/ledger"
	"github.com/jsalazarc/Ventas-api/internal/application/returns"
	"github.com/jsalazarc/Ventas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockLedgerUC *ledger.StockLedgerUseCase
	KardexUC      *ledger.KardexUseCase
	ReturnsUC     *returns.ReturnsUseCase
	AlertRepo     repository.StockAlertRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedgerUC, deps.KardexUC)
	invGroup.Post("/entradas", RequireRole("admin", "bodeguero"), inventoryHandler.RegisterEntrada)
	invGroup.Post("/salidas", RequireRole("admin", "bodeguero", "vendedor"), inventoryHandler.RegisterSalida)
	// AJUSTE fija el stock en un valor absoluto: operación privilegiada.
	invGroup.Post("/ajustes", RequireRole("admin"), inventoryHandler.AjustarStock)
	invGroup.Get("/products/:id/kardex", inventoryHandler.GetKardex)
	invGroup.Get("/products/:id/audit", RequireRole("admin"), inventoryHandler.AuditProduct)

	// Devoluciones (protegido)
	returnsGroup := protected.Group("/returns")
	returnsHandler := NewReturnsHandler(deps.ReturnsUC)
	returnsGroup.Post("/", returnsHandler.Create)
	returnsGroup.Get("/", returnsHandler.ListBySale)
	returnsGroup.Get("/:id", returnsHandler.GetByID)
	returnsGroup.Post("/:id/approve", RequireRole("admin"), returnsHandler.Approve)
	returnsGroup.Post("/:id/reject", RequireRole("admin"), returnsHandler.Reject)
	returnsGroup.Post("/:id/complete", RequireRole("admin"), returnsHandler.Complete)

	// Consultas de solo lectura sobre una venta (protegido)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/:id/return-deadline", returnsHandler.VerifyDeadline)
	salesGroup.Get("/:id/return-availability", returnsHandler.CheckAvailability)

	// Alertas de stock (protegido)
	alertsGroup := protected.Group("/alerts")
	alertsHandler := NewAlertsHandler(deps.AlertRepo)
	alertsGroup.Get("/", alertsHandler.ListUnread)
	alertsGroup.Put("/:id/read", RequireRole("admin", "bodeguero"), alertsHandler.MarkRead)
}
