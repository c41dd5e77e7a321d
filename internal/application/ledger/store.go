// Package ledger contiene el motor de estado del libro diario: las cuatro
// colecciones (inventario, ventas, gastos, pagos de crédito), sus
// operaciones de mutación y los invariantes que las mantienen consistentes.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-diaria/internal/domain"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
	"github.com/tu-usuario/caja-diaria/internal/domain/snapshot"
	"github.com/tu-usuario/caja-diaria/pkg/logger"
)

// Store es el único dueño de las colecciones del libro diario. Toda mutación
// entra por sus métodos, se ejecuta completa bajo el mutex (una venta nunca
// se observa con el stock decrementado y el registro sin anexar) y al
// terminar dispara el guardado vía Persistence.
//
// Si el guardado falla, la mutación en memoria queda firme y el método
// devuelve su resultado junto con un error que envuelve domain.ErrSaveFailed:
// la memoria es la fuente de verdad entre guardados, la persistencia es un
// espejo de mejor esfuerzo.
type Store struct {
	mu      sync.Mutex
	clock   Clock
	persist Persistence
	log     *logger.Logger

	// id → registro para búsqueda O(1); los slices conservan el orden de
	// inserción para listados y feeds.
	items     map[string]entity.InventoryItem
	itemOrder []string

	sales     map[string]entity.Sale
	saleOrder []string

	expenses     map[string]entity.Expense
	expenseOrder []string

	payments     map[string]entity.CreditPayment
	paymentOrder []string
}

// NewStore construye un store vacío.
func NewStore(clock Clock, persist Persistence, log *logger.Logger) *Store {
	return &Store{
		clock:    clock,
		persist:  persist,
		log:      log,
		items:    map[string]entity.InventoryItem{},
		sales:    map[string]entity.Sale{},
		expenses: map[string]entity.Expense{},
		payments: map[string]entity.CreditPayment{},
	}
}

// AddInventoryItem da de alta un artículo con id fresco y fecha actual.
// Falla con domain.ErrInvalidInput si el nombre está vacío, la cantidad es
// negativa o el costo unitario es negativo.
func (s *Store) AddInventoryItem(name, description string, quantity int, unitCost decimal.Decimal) (entity.InventoryItem, error) {
	var zero entity.InventoryItem
	if strings.TrimSpace(name) == "" {
		return zero, fmt.Errorf("%w: el nombre del artículo es obligatorio", domain.ErrInvalidInput)
	}
	if quantity < 0 {
		return zero, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if unitCost.IsNegative() {
		return zero, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
		UnitCost:    unitCost,
		DateAdded:   s.clock.Now(),
	}
	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)

	s.log.Debug().Str("item_id", item.ID).Str("name", name).Int("quantity", quantity).Msg("artículo agregado al inventario")
	return item, s.persistLocked("add_inventory_item")
}

// RemoveInventoryItem elimina un artículo. No revisa ventas históricas: las
// ventas guardan su propia copia de nombre y costo.
func (s *Store) RemoveInventoryItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	delete(s.items, id)
	s.itemOrder = removeID(s.itemOrder, id)

	s.log.Debug().Str("item_id", id).Msg("artículo eliminado del inventario")
	return s.persistLocked("remove_inventory_item")
}

// RecordSale registra una venta: decrementa el stock del artículo y anexa el
// registro de venta como un solo efecto atómico; ante cualquier fallo no
// queda estado parcial. ItemName y CostPrice se copian del artículo al
// momento de la venta.
func (s *Store) RecordSale(customerName, itemID string, quantity int, sellingPrice decimal.Decimal, paymentType string) (entity.Sale, error) {
	var zero entity.Sale
	if quantity <= 0 {
		return zero, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if sellingPrice.IsNegative() {
		return zero, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
	}
	if paymentType != entity.PaymentTypePaid && paymentType != entity.PaymentTypeCredit {
		return zero, fmt.Errorf("%w: forma de pago desconocida %q", domain.ErrInvalidInput, paymentType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return zero, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, itemID)
	}
	if quantity > item.Quantity {
		return zero, fmt.Errorf("%w: disponibles %d, solicitados %d", domain.ErrInsufficientStock, item.Quantity, quantity)
	}

	qty := decimal.NewFromInt(int64(quantity))
	sale := entity.Sale{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		ItemID:       item.ID,
		ItemName:     item.Name,
		Quantity:     quantity,
		SellingPrice: sellingPrice,
		TotalAmount:  sellingPrice.Mul(qty),
		PaymentType:  paymentType,
		CostPrice:    item.UnitCost,
		Profit:       sellingPrice.Sub(item.UnitCost).Mul(qty),
		Date:         s.clock.Now(),
		IsPaid:       paymentType == entity.PaymentTypePaid,
	}

	item.Quantity -= quantity
	s.items[itemID] = item
	s.sales[sale.ID] = sale
	s.saleOrder = append(s.saleOrder, sale.ID)

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("item_id", itemID).
		Int("quantity", quantity).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Str("payment_type", paymentType).
		Msg("venta registrada")
	return sale, s.persistLocked("record_sale")
}

// AddExpense registra un gasto con fecha actual.
func (s *Store) AddExpense(description string, amount decimal.Decimal, category string) (entity.Expense, error) {
	var zero entity.Expense
	if strings.TrimSpace(description) == "" {
		return zero, fmt.Errorf("%w: la descripción del gasto es obligatoria", domain.ErrInvalidInput)
	}
	if amount.IsNegative() {
		return zero, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exp := entity.Expense{
		ID:          uuid.New().String(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        s.clock.Now(),
	}
	s.expenses[exp.ID] = exp
	s.expenseOrder = append(s.expenseOrder, exp.ID)

	s.log.Debug().Str("expense_id", exp.ID).Str("amount", amount.StringFixed(2)).Msg("gasto registrado")
	return exp, s.persistLocked("add_expense")
}

// RemoveExpense elimina un gasto.
func (s *Store) RemoveExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
	}
	delete(s.expenses, id)
	s.expenseOrder = removeID(s.expenseOrder, id)

	s.log.Debug().Str("expense_id", id).Msg("gasto eliminado")
	return s.persistLocked("remove_expense")
}

// MarkSalePaid liquida una venta a crédito: pasa IsPaid a true y anexa
// exactamente un CreditPayment con el cliente y el total de la venta.
// Liquidar dos veces es un error (domain.ErrAlreadyPaid), no un no-op.
func (s *Store) MarkSalePaid(saleID string) (entity.CreditPayment, error) {
	var zero entity.CreditPayment

	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[saleID]
	if !ok {
		return zero, fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
	}
	if sale.IsPaid {
		return zero, fmt.Errorf("%w: venta %s", domain.ErrAlreadyPaid, saleID)
	}

	sale.IsPaid = true
	s.sales[saleID] = sale

	pay := entity.CreditPayment{
		ID:           uuid.New().String(),
		SaleID:       sale.ID,
		CustomerName: sale.CustomerName,
		Amount:       sale.TotalAmount,
		DatePaid:     s.clock.Now(),
	}
	s.payments[pay.ID] = pay
	s.paymentOrder = append(s.paymentOrder, pay.ID)

	s.log.Info().Str("sale_id", saleID).Str("amount", pay.Amount.StringFixed(2)).Msg("crédito liquidado")
	return pay, s.persistLocked("mark_sale_paid")
}

// LoadSnapshot reemplaza el estado completo por el del snapshot. Valida los
// invariantes antes de tocar nada: si el snapshot es inválido el estado
// previo queda intacto.
func (s *Store) LoadSnapshot(snap *entity.LedgerSnapshot) error {
	if err := snapshot.Validate(snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]entity.InventoryItem, len(snap.Inventory))
	s.itemOrder = make([]string, 0, len(snap.Inventory))
	for _, item := range snap.Inventory {
		s.items[item.ID] = item
		s.itemOrder = append(s.itemOrder, item.ID)
	}

	s.sales = make(map[string]entity.Sale, len(snap.Sales))
	s.saleOrder = make([]string, 0, len(snap.Sales))
	for _, sale := range snap.Sales {
		s.sales[sale.ID] = sale
		s.saleOrder = append(s.saleOrder, sale.ID)
	}

	s.expenses = make(map[string]entity.Expense, len(snap.Expenses))
	s.expenseOrder = make([]string, 0, len(snap.Expenses))
	for _, exp := range snap.Expenses {
		s.expenses[exp.ID] = exp
		s.expenseOrder = append(s.expenseOrder, exp.ID)
	}

	s.payments = make(map[string]entity.CreditPayment, len(snap.CreditPayments))
	s.paymentOrder = make([]string, 0, len(snap.CreditPayments))
	for _, pay := range snap.CreditPayments {
		s.payments[pay.ID] = pay
		s.paymentOrder = append(s.paymentOrder, pay.ID)
	}

	s.log.Info().
		Int("inventory", len(snap.Inventory)).
		Int("sales", len(snap.Sales)).
		Int("expenses", len(snap.Expenses)).
		Int("credit_payments", len(snap.CreditPayments)).
		Msg("snapshot cargado")
	return s.persistLocked("load_snapshot")
}

// ExportSnapshot devuelve una copia del estado completo, en orden de
// inserción. El resultado no comparte memoria con el store.
func (s *Store) ExportSnapshot() *entity.LedgerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked arma el snapshot; el llamador debe tener el mutex.
func (s *Store) snapshotLocked() *entity.LedgerSnapshot {
	snap := entity.NewLedgerSnapshot()
	for _, id := range s.itemOrder {
		snap.Inventory = append(snap.Inventory, s.items[id])
	}
	for _, id := range s.saleOrder {
		snap.Sales = append(snap.Sales, s.sales[id])
	}
	for _, id := range s.expenseOrder {
		snap.Expenses = append(snap.Expenses, s.expenses[id])
	}
	for _, id := range s.paymentOrder {
		snap.CreditPayments = append(snap.CreditPayments, s.payments[id])
	}
	return snap
}

// persistLocked guarda el estado tras una mutación exitosa. Un fallo de
// guardado no revierte la mutación: se reporta envuelto en ErrSaveFailed.
func (s *Store) persistLocked(op string) error {
	if err := s.persist.Save(s.snapshotLocked()); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("fallo al guardar el snapshot")
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
