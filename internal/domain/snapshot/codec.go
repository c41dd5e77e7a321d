// Package snapshot serializa y deserializa el estado completo del libro
// diario hacia/desde el documento JSON de intercambio (backup manual,
// persistencia local).
//
// El documento tiene exactamente cuatro secuencias de primer nivel:
// inventory, sales, expenses y creditPayments. Los nombres de campo siguen
// el formato histórico de exportación (camelCase, costPrice, dateAdded...).
// Campos desconocidos se ignoran; campos requeridos ausentes o con tipo
// incorrecto producen domain.ErrMalformedSnapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-diaria/internal/domain"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
)

// Marshal codifica el snapshot como JSON indentado, preservando el orden de
// inserción de cada colección. La salida es determinista: mismo snapshot,
// mismos bytes.
func Marshal(s *entity.LedgerSnapshot) ([]byte, error) {
	// Clone normaliza colecciones nil a vacías, así el documento siempre
	// trae los cuatro arreglos.
	out, err := json.MarshalIndent(s.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	return out, nil
}

// Unmarshal decodifica y valida un documento de snapshot. Si el documento no
// trae las cuatro colecciones, si algún registro omite un campo requerido o
// trae un tipo incorrecto, o si el resultado viola los invariantes del
// modelo, devuelve domain.ErrMalformedSnapshot sin estado parcial.
func Unmarshal(data []byte) (*entity.LedgerSnapshot, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}
	if doc.Inventory == nil {
		return nil, missingCollection("inventory")
	}
	if doc.Sales == nil {
		return nil, missingCollection("sales")
	}
	if doc.Expenses == nil {
		return nil, missingCollection("expenses")
	}
	if doc.CreditPayments == nil {
		return nil, missingCollection("creditPayments")
	}

	snap := entity.NewLedgerSnapshot()
	for i, raw := range *doc.Inventory {
		item, err := raw.toEntity(i)
		if err != nil {
			return nil, err
		}
		snap.Inventory = append(snap.Inventory, item)
	}
	for i, raw := range *doc.Sales {
		sale, err := raw.toEntity(i)
		if err != nil {
			return nil, err
		}
		snap.Sales = append(snap.Sales, sale)
	}
	for i, raw := range *doc.Expenses {
		exp, err := raw.toEntity(i)
		if err != nil {
			return nil, err
		}
		snap.Expenses = append(snap.Expenses, exp)
	}
	for i, raw := range *doc.CreditPayments {
		pay, err := raw.toEntity(i)
		if err != nil {
			return nil, err
		}
		snap.CreditPayments = append(snap.CreditPayments, pay)
	}

	if err := Validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Validate verifica los invariantes del modelo sobre un snapshot ya
// decodificado: cantidades y montos no negativos, nombres presentes,
// identificadores únicos por colección y coherencia forma de pago / estado.
// Lo reutiliza el Ledger Store antes de reemplazar su estado.
func Validate(s *entity.LedgerSnapshot) error {
	seen := map[string]struct{}{}
	for i, item := range s.Inventory {
		if err := uniqueID(seen, item.ID, "inventory", i); err != nil {
			return err
		}
		if strings.TrimSpace(item.Name) == "" {
			return malformedf("inventory[%d]: name vacío", i)
		}
		if item.Quantity < 0 {
			return malformedf("inventory[%d]: quantity negativa", i)
		}
		if item.UnitCost.IsNegative() {
			return malformedf("inventory[%d]: cost negativo", i)
		}
	}

	seen = map[string]struct{}{}
	for i, sale := range s.Sales {
		if err := uniqueID(seen, sale.ID, "sales", i); err != nil {
			return err
		}
		if sale.Quantity <= 0 {
			return malformedf("sales[%d]: quantity debe ser positiva", i)
		}
		if sale.SellingPrice.IsNegative() || sale.CostPrice.IsNegative() {
			return malformedf("sales[%d]: precio negativo", i)
		}
		if sale.PaymentType != entity.PaymentTypePaid && sale.PaymentType != entity.PaymentTypeCredit {
			return malformedf("sales[%d]: paymentType desconocido %q", i, sale.PaymentType)
		}
		// Una venta de contado jamás queda sin pagar; el sentido inverso sí
		// existe (crédito ya liquidado conserva paymentType=credit).
		if sale.PaymentType == entity.PaymentTypePaid && !sale.IsPaid {
			return malformedf("sales[%d]: venta de contado marcada como no pagada", i)
		}
	}

	seen = map[string]struct{}{}
	for i, exp := range s.Expenses {
		if err := uniqueID(seen, exp.ID, "expenses", i); err != nil {
			return err
		}
		if strings.TrimSpace(exp.Description) == "" {
			return malformedf("expenses[%d]: description vacía", i)
		}
		if exp.Amount.IsNegative() {
			return malformedf("expenses[%d]: amount negativo", i)
		}
	}

	seen = map[string]struct{}{}
	for i, pay := range s.CreditPayments {
		if err := uniqueID(seen, pay.ID, "creditPayments", i); err != nil {
			return err
		}
		if pay.SaleID == "" {
			return malformedf("creditPayments[%d]: saleId vacío", i)
		}
		if pay.Amount.IsNegative() {
			return malformedf("creditPayments[%d]: amount negativo", i)
		}
	}
	return nil
}

// ── decodificación cruda ──────────────────────────────────────────────────────

// rawDocument usa punteros para distinguir colección ausente de colección
// vacía.
type rawDocument struct {
	Inventory      *[]rawInventoryItem `json:"inventory"`
	Sales          *[]rawSale          `json:"sales"`
	Expenses       *[]rawExpense       `json:"expenses"`
	CreditPayments *[]rawCreditPayment `json:"creditPayments"`
}

type rawInventoryItem struct {
	ID          *flexID          `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Quantity    *json.Number     `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"cost"`
	DateAdded   *string          `json:"dateAdded"`
}

func (r rawInventoryItem) toEntity(i int) (entity.InventoryItem, error) {
	var zero entity.InventoryItem
	if r.ID == nil || r.Name == nil || r.Quantity == nil || r.UnitCost == nil || r.DateAdded == nil {
		return zero, malformedf("inventory[%d]: campo requerido ausente", i)
	}
	qty, err := intField(*r.Quantity, "inventory", "quantity", i)
	if err != nil {
		return zero, err
	}
	added, err := dateField(*r.DateAdded, "inventory", "dateAdded", i)
	if err != nil {
		return zero, err
	}
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	return entity.InventoryItem{
		ID:          r.ID.String(),
		Name:        *r.Name,
		Description: desc,
		Quantity:    qty,
		UnitCost:    *r.UnitCost,
		DateAdded:   added,
	}, nil
}

type rawSale struct {
	ID           *flexID          `json:"id"`
	CustomerName *string          `json:"customerName"`
	ItemID       *flexID          `json:"itemId"`
	ItemName     *string          `json:"itemName"`
	Quantity     *json.Number     `json:"quantity"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	PaymentType  *string          `json:"paymentType"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	Profit       *decimal.Decimal `json:"profit"`
	Date         *string          `json:"date"`
	IsPaid       *bool            `json:"isPaid"`
}

func (r rawSale) toEntity(i int) (entity.Sale, error) {
	var zero entity.Sale
	if r.ID == nil || r.CustomerName == nil || r.ItemID == nil || r.ItemName == nil ||
		r.Quantity == nil || r.SellingPrice == nil || r.TotalAmount == nil ||
		r.PaymentType == nil || r.CostPrice == nil || r.Profit == nil ||
		r.Date == nil || r.IsPaid == nil {
		return zero, malformedf("sales[%d]: campo requerido ausente", i)
	}
	qty, err := intField(*r.Quantity, "sales", "quantity", i)
	if err != nil {
		return zero, err
	}
	date, err := dateField(*r.Date, "sales", "date", i)
	if err != nil {
		return zero, err
	}
	return entity.Sale{
		ID:           r.ID.String(),
		CustomerName: *r.CustomerName,
		ItemID:       r.ItemID.String(),
		ItemName:     *r.ItemName,
		Quantity:     qty,
		SellingPrice: *r.SellingPrice,
		TotalAmount:  *r.TotalAmount,
		PaymentType:  *r.PaymentType,
		CostPrice:    *r.CostPrice,
		Profit:       *r.Profit,
		Date:         date,
		IsPaid:       *r.IsPaid,
	}, nil
}

type rawExpense struct {
	ID          *flexID          `json:"id"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date"`
}

func (r rawExpense) toEntity(i int) (entity.Expense, error) {
	var zero entity.Expense
	if r.ID == nil || r.Description == nil || r.Amount == nil || r.Category == nil || r.Date == nil {
		return zero, malformedf("expenses[%d]: campo requerido ausente", i)
	}
	date, err := dateField(*r.Date, "expenses", "date", i)
	if err != nil {
		return zero, err
	}
	return entity.Expense{
		ID:          r.ID.String(),
		Description: *r.Description,
		Amount:      *r.Amount,
		Category:    *r.Category,
		Date:        date,
	}, nil
}

type rawCreditPayment struct {
	ID           *flexID          `json:"id"`
	SaleID       *flexID          `json:"saleId"`
	CustomerName *string          `json:"customerName"`
	Amount       *decimal.Decimal `json:"amount"`
	DatePaid     *string          `json:"datePaid"`
}

func (r rawCreditPayment) toEntity(i int) (entity.CreditPayment, error) {
	var zero entity.CreditPayment
	if r.ID == nil || r.SaleID == nil || r.CustomerName == nil || r.Amount == nil || r.DatePaid == nil {
		return zero, malformedf("creditPayments[%d]: campo requerido ausente", i)
	}
	paid, err := dateField(*r.DatePaid, "creditPayments", "datePaid", i)
	if err != nil {
		return zero, err
	}
	return entity.CreditPayment{
		ID:           r.ID.String(),
		SaleID:       r.SaleID.String(),
		CustomerName: *r.CustomerName,
		Amount:       *r.Amount,
		DatePaid:     paid,
	}, nil
}

// flexID acepta identificadores como string o como número JSON: los exports
// históricos usaban epoch millis numéricos como id.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

// ── helpers ───────────────────────────────────────────────────────────────────

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}

func missingCollection(name string) error {
	return malformedf("falta la colección %q", name)
}

func uniqueID(seen map[string]struct{}, id, collection string, i int) error {
	if id == "" {
		return malformedf("%s[%d]: id vacío", collection, i)
	}
	if _, dup := seen[id]; dup {
		return malformedf("%s[%d]: id duplicado %q", collection, i, id)
	}
	seen[id] = struct{}{}
	return nil
}

func intField(n json.Number, collection, field string, i int) (int, error) {
	v, err := n.Int64()
	if err != nil {
		return 0, malformedf("%s[%d]: %s no es un entero", collection, i, field)
	}
	return int(v), nil
}

func dateField(s, collection, field string, i int) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, malformedf("%s[%d]: %s no es una fecha RFC3339", collection, i, field)
	}
	return t, nil
}
