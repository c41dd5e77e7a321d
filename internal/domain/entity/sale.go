package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago de una venta.
const (
	PaymentTypePaid   = "paid"   // contado
	PaymentTypeCredit = "credit" // fiado
)

// Sale representa una venta registrada.
//
// ItemName y CostPrice son copias tomadas al momento de la venta: editar o
// eliminar el artículo del inventario después no altera las cifras
// históricas. ItemID es una referencia histórica, no viva.
// IsPaid solo transiciona de crédito a pagada, nunca al revés.
type Sale struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaymentType  string          `json:"paymentType"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	Profit       decimal.Decimal `json:"profit"`
	Date         time.Time       `json:"date"`
	IsPaid       bool            `json:"isPaid"`
}
