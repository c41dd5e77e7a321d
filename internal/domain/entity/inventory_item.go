package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo en stock.
// Quantity nunca es negativa; las ventas la decrementan y el registro se
// elimina sin tocar el historial de ventas (las ventas guardan su propia
// copia de nombre y costo).
type InventoryItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"cost"`
	DateAdded   time.Time       `json:"dateAdded"`
}

// TotalValue devuelve cantidad × costo unitario.
func (i InventoryItem) TotalValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
