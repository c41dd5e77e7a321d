package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
)

// Los montos de las respuestas se redondean a dos decimales aquí, en la
// frontera de presentación; el núcleo opera siempre con decimales exactos.

// CreateInventoryItemRequest entrada para dar de alta un artículo.
type CreateInventoryItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// InventoryItemResponse salida de un artículo.
type InventoryItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
	DateAdded   time.Time       `json:"date_added"`
}

// FromInventoryItem convierte la entidad a DTO de respuesta.
func FromInventoryItem(item entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitCost:    item.UnitCost.Round(2),
		TotalValue:  item.TotalValue().Round(2),
		DateAdded:   item.DateAdded,
	}
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerName string          `json:"customer_name" validate:"required,min=1,max=200"`
	ItemID       string          `json:"item_id" validate:"required"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	PaymentType  string          `json:"payment_type" validate:"required,oneof=paid credit"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaymentType  string          `json:"payment_type"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Profit       decimal.Decimal `json:"profit"`
	Date         time.Time       `json:"date"`
	IsPaid       bool            `json:"is_paid"`
}

// FromSale convierte la entidad a DTO de respuesta.
func FromSale(sale entity.Sale) SaleResponse {
	return SaleResponse{
		ID:           sale.ID,
		CustomerName: sale.CustomerName,
		ItemID:       sale.ItemID,
		ItemName:     sale.ItemName,
		Quantity:     sale.Quantity,
		SellingPrice: sale.SellingPrice.Round(2),
		TotalAmount:  sale.TotalAmount.Round(2),
		PaymentType:  sale.PaymentType,
		CostPrice:    sale.CostPrice.Round(2),
		Profit:       sale.Profit.Round(2),
		Date:         sale.Date,
		IsPaid:       sale.IsPaid,
	}
}

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"max=100"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

// FromExpense convierte la entidad a DTO de respuesta.
func FromExpense(exp entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          exp.ID,
		Description: exp.Description,
		Amount:      exp.Amount.Round(2),
		Category:    exp.Category,
		Date:        exp.Date,
	}
}

// CreditPaymentResponse salida del pago de un crédito.
type CreditPaymentResponse struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	DatePaid     time.Time       `json:"date_paid"`
}

// FromCreditPayment convierte la entidad a DTO de respuesta.
func FromCreditPayment(pay entity.CreditPayment) CreditPaymentResponse {
	return CreditPaymentResponse{
		ID:           pay.ID,
		SaleID:       pay.SaleID,
		CustomerName: pay.CustomerName,
		Amount:       pay.Amount.Round(2),
		DatePaid:     pay.DatePaid,
	}
}
