package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/dto"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
)

// ExpenseHandler maneja las peticiones HTTP de gastos.
type ExpenseHandler struct {
	store *ledger.Store
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(store *ledger.Store) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// Create registra un gasto.
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	exp, err := h.store.AddExpense(in.Description, in.Amount, in.Category)
	return respondMutation(c, fiber.StatusCreated, fiber.Map{"expense": dto.FromExpense(exp)}, err)
}

// List devuelve los gastos más recientes primero, limitados por ?limit.
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var in dto.ListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit inválido"})
	}
	in.DefaultLimit()

	snap := h.store.ExportSnapshot()
	expenses := []dto.ExpenseResponse{}
	for i := len(snap.Expenses) - 1; i >= 0 && len(expenses) < in.Limit; i-- {
		expenses = append(expenses, dto.FromExpense(snap.Expenses[i]))
	}
	return c.JSON(fiber.Map{"expenses": expenses, "total": len(snap.Expenses)})
}

// Remove elimina un gasto.
func (h *ExpenseHandler) Remove(c *fiber.Ctx) error {
	err := h.store.RemoveExpense(c.Params("id"))
	return respondMutation(c, fiber.StatusOK, fiber.Map{"message": "gasto eliminado"}, err)
}
