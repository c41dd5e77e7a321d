package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/dto"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
)

// InventoryHandler maneja las peticiones HTTP de inventario.
type InventoryHandler struct {
	store   *ledger.Store
	reports *report.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store *ledger.Store, reports *report.UseCase) *InventoryHandler {
	return &InventoryHandler{store: store, reports: reports}
}

// Create da de alta un artículo en el inventario.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.store.AddInventoryItem(in.Name, in.Description, in.Quantity, in.UnitCost)
	return respondMutation(c, fiber.StatusCreated, fiber.Map{"item": dto.FromInventoryItem(item)}, err)
}

// List devuelve el inventario completo con su valoración.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	snap := h.store.ExportSnapshot()
	v := h.reports.InventoryValuation(snap)
	items := make([]dto.InventoryItemResponse, 0, len(snap.Inventory))
	for _, item := range snap.Inventory {
		items = append(items, dto.FromInventoryItem(item))
	}
	return c.JSON(fiber.Map{
		"items":       items,
		"item_count":  v.ItemCount,
		"total_value": v.TotalValue.Round(2),
	})
}

// ListAvailable devuelve solo los artículos con existencias (el feed del
// selector de ventas).
func (h *InventoryHandler) ListAvailable(c *fiber.Ctx) error {
	snap := h.store.ExportSnapshot()
	items := []dto.InventoryItemResponse{}
	for _, item := range snap.Inventory {
		if item.Quantity > 0 {
			items = append(items, dto.FromInventoryItem(item))
		}
	}
	return c.JSON(fiber.Map{"items": items})
}

// Remove elimina un artículo del inventario. Las ventas históricas del
// artículo no se tocan.
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	err := h.store.RemoveInventoryItem(c.Params("id"))
	return respondMutation(c, fiber.StatusOK, fiber.Map{"message": "artículo eliminado"}, err)
}
