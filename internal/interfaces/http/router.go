package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
	"github.com/tu-usuario/caja-diaria/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store   *ledger.Store
	Reports *report.UseCase
	Log     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	api := app.Group("/api")

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Store, deps.Reports)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/available", inventoryHandler.ListAvailable)
	inv.Delete("/:id", inventoryHandler.Remove)

	sales := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.Store, deps.Reports)
	sales.Post("/", salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/credit", salesHandler.ListCredit)
	sales.Post("/:id/pay", salesHandler.MarkPaid)

	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.Store)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Remove)

	reportHandler := NewReportHandler(deps.Store, deps.Reports)
	api.Get("/dashboard", reportHandler.Dashboard)
	reports := api.Group("/reports")
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/credit", reportHandler.Credit)

	snapshotHandler := NewSnapshotHandler(deps.Store)
	api.Get("/snapshot", snapshotHandler.Export)
	api.Put("/snapshot", snapshotHandler.Import)
}

// RequestLogger deja una línea de log estructurado por petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
