package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPayment registra el pago de una venta a crédito.
// Se crea exactamente una vez por venta, en el momento en que la venta pasa
// a pagada; Amount es una copia del TotalAmount de la venta (solo se admite
// liquidación total, no pagos parciales).
type CreditPayment struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"saleId"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	DatePaid     time.Time       `json:"datePaid"`
}
