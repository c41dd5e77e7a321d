package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/dto"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
)

// SalesHandler maneja las peticiones HTTP de ventas y créditos.
type SalesHandler struct {
	store   *ledger.Store
	reports *report.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(store *ledger.Store, reports *report.UseCase) *SalesHandler {
	return &SalesHandler{store: store, reports: reports}
}

// Create registra una venta (contado o crédito).
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	sale, err := h.store.RecordSale(in.CustomerName, in.ItemID, in.Quantity, in.SellingPrice, in.PaymentType)
	return respondMutation(c, fiber.StatusCreated, fiber.Map{"sale": dto.FromSale(sale)}, err)
}

// List devuelve las ventas más recientes primero, limitadas por ?limit
// (10 por defecto).
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var in dto.ListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit inválido"})
	}
	in.DefaultLimit()

	snap := h.store.ExportSnapshot()
	sales := []dto.SaleResponse{}
	for i := len(snap.Sales) - 1; i >= 0 && len(sales) < in.Limit; i-- {
		sales = append(sales, dto.FromSale(snap.Sales[i]))
	}
	return c.JSON(fiber.Map{"sales": sales, "total": len(snap.Sales)})
}

// ListCredit devuelve la cartera pendiente con la antigüedad de cada crédito.
func (h *SalesHandler) ListCredit(c *fiber.Ctx) error {
	snap := h.store.ExportSnapshot()
	r := h.reports.CreditReport(snap)
	return c.JSON(fiber.Map{
		"credits":           dto.FromCreditEntries(r.Entries),
		"total_outstanding": r.TotalOutstanding.Round(2),
	})
}

// MarkPaid liquida una venta a crédito y registra el pago.
func (h *SalesHandler) MarkPaid(c *fiber.Ctx) error {
	pay, err := h.store.MarkSalePaid(c.Params("id"))
	return respondMutation(c, fiber.StatusCreated, fiber.Map{"payment": dto.FromCreditPayment(pay)}, err)
}
