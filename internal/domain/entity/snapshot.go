package entity

// LedgerSnapshot es el estado completo del libro diario: la unidad de
// persistencia y de exportación/importación. Cada colección conserva el
// orden de inserción.
type LedgerSnapshot struct {
	Inventory      []InventoryItem `json:"inventory"`
	Sales          []Sale          `json:"sales"`
	Expenses       []Expense       `json:"expenses"`
	CreditPayments []CreditPayment `json:"creditPayments"`
}

// NewLedgerSnapshot devuelve un snapshot vacío con las cuatro colecciones
// inicializadas (nunca nil, para que la serialización emita arreglos vacíos).
func NewLedgerSnapshot() *LedgerSnapshot {
	return &LedgerSnapshot{
		Inventory:      []InventoryItem{},
		Sales:          []Sale{},
		Expenses:       []Expense{},
		CreditPayments: []CreditPayment{},
	}
}

// Clone devuelve una copia profunda del snapshot. Las entidades son valores
// (decimal.Decimal es inmutable), así que copiar los slices basta para que
// nada quede compartido con el llamador.
func (s *LedgerSnapshot) Clone() *LedgerSnapshot {
	out := &LedgerSnapshot{
		Inventory:      make([]InventoryItem, len(s.Inventory)),
		Sales:          make([]Sale, len(s.Sales)),
		Expenses:       make([]Expense, len(s.Expenses)),
		CreditPayments: make([]CreditPayment, len(s.CreditPayments)),
	}
	copy(out.Inventory, s.Inventory)
	copy(out.Sales, s.Sales)
	copy(out.Expenses, s.Expenses)
	copy(out.CreditPayments, s.CreditPayments)
	return out
}
