package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/dto"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
)

// ReportHandler maneja el dashboard y los reportes de solo lectura.
type ReportHandler struct {
	store   *ledger.Store
	reports *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(store *ledger.Store, reports *report.UseCase) *ReportHandler {
	return &ReportHandler{store: store, reports: reports}
}

// day resuelve el parámetro ?date (YYYY-MM-DD); si falta usa el día actual.
// Devuelve "" y responde 400 si la fecha es inválida.
func (h *ReportHandler) day(c *fiber.Ctx) (string, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.reports.Today(), nil
	}
	if _, err := time.Parse(ledger.DayLayout, raw); err != nil {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}
	return raw, nil
}

// Dashboard devuelve los totales del día y el feed de actividad.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	day, err := h.day(c)
	if day == "" {
		return err
	}
	snap := h.store.ExportSnapshot()
	return c.JSON(dto.DashboardResponse{
		Date:       day,
		Totals:     dto.FromDayTotals(h.reports.DayTotals(snap, day)),
		Activities: dto.FromActivityFeed(h.reports.ActivityFeed(snap, day)),
	})
}

// Daily devuelve los datos del reporte diario.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	day, err := h.day(c)
	if day == "" {
		return err
	}
	snap := h.store.ExportSnapshot()
	return c.JSON(dto.FromDailyReport(h.reports.DailyReport(snap, day)))
}

// Inventory devuelve los datos del reporte de inventario.
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	snap := h.store.ExportSnapshot()
	return c.JSON(dto.FromInventoryReport(h.reports.InventoryReport(snap)))
}

// Credit devuelve los datos del reporte de cartera.
func (h *ReportHandler) Credit(c *fiber.Ctx) error {
	snap := h.store.ExportSnapshot()
	return c.JSON(dto.FromCreditReport(h.reports.CreditReport(snap)))
}
