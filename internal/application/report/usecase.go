// Package report contiene los agregados derivados del libro diario: totales
// del día, valoración de inventario, cartera de crédito y feed de actividad.
// Todas las funciones son de solo lectura sobre un snapshot; el redondeo a
// dos decimales ocurre recién en la capa de presentación.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
)

// UseCase calcula cifras derivadas sobre snapshots del Ledger Store.
// El reloj inyectado fija el corte de día y el "ahora" de la cartera.
type UseCase struct {
	clock ledger.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(clock ledger.Clock) *UseCase {
	return &UseCase{clock: clock}
}

// DayTotals cifras de un día calendario.
// Cash y Credit clasifican las ventas del día según IsPaid al momento de la
// consulta, no al momento de la venta: liquidar un crédito mueve el monto de
// Credit a Cash en los totales de ese día.
type DayTotals struct {
	Cash     decimal.Decimal
	Credit   decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// DayTotals calcula los totales del día indicado (clave "2006-01-02").
// Profit = utilidad de las ventas del día menos los gastos del día.
func (uc *UseCase) DayTotals(s *entity.LedgerSnapshot, day string) DayTotals {
	cash, credit, profit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, sale := range s.Sales {
		if uc.dayOf(sale.Date) != day {
			continue
		}
		if sale.IsPaid {
			cash = cash.Add(sale.TotalAmount)
		} else {
			credit = credit.Add(sale.TotalAmount)
		}
		profit = profit.Add(sale.Profit)
	}

	expenses := decimal.Zero
	for _, exp := range s.Expenses {
		if uc.dayOf(exp.Date) == day {
			expenses = expenses.Add(exp.Amount)
		}
	}

	return DayTotals{
		Cash:     cash,
		Credit:   credit,
		Expenses: expenses,
		Profit:   profit.Sub(expenses),
	}
}

// Valuation valoración del inventario actual.
type Valuation struct {
	ItemCount  int
	TotalValue decimal.Decimal
}

// InventoryValuation suma cantidad × costo unitario sobre todo el inventario.
func (uc *UseCase) InventoryValuation(s *entity.LedgerSnapshot) Valuation {
	total := decimal.Zero
	for _, item := range s.Inventory {
		total = total.Add(item.TotalValue())
	}
	return Valuation{ItemCount: len(s.Inventory), TotalValue: total}
}

// CreditEntry una venta a crédito pendiente y su antigüedad en días.
type CreditEntry struct {
	Sale            entity.Sale
	DaysOutstanding int
}

// OutstandingCredit devuelve las ventas no pagadas en orden de inserción.
// La antigüedad es días completos transcurridos (truncado, no redondeo),
// nunca negativa aunque la venta tenga fecha futura respecto al reloj.
func (uc *UseCase) OutstandingCredit(s *entity.LedgerSnapshot) []CreditEntry {
	now := uc.clock.Now()
	entries := []CreditEntry{}
	for _, sale := range s.Sales {
		if sale.IsPaid {
			continue
		}
		days := int(now.Sub(sale.Date) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		entries = append(entries, CreditEntry{Sale: sale, DaysOutstanding: days})
	}
	return entries
}

// Tipos de entrada del feed de actividad.
const (
	ActivitySale      = "sale"
	ActivityExpense   = "expense"
	ActivityInventory = "inventory"
)

// ActivityEntry una entrada del feed: venta, gasto o alta de inventario.
type ActivityEntry struct {
	Kind        string
	Title       string
	Description string
	Timestamp   time.Time
}

// ActivityFeed arma el feed del día indicado: una entrada por venta, gasto y
// alta de inventario de ese día, ordenadas de más reciente a más antigua.
// Los empates de timestamp conservan el orden de inserción (orden estable),
// así el feed es determinista.
func (uc *UseCase) ActivityFeed(s *entity.LedgerSnapshot, day string) []ActivityEntry {
	entries := []ActivityEntry{}

	for _, sale := range s.Sales {
		if uc.dayOf(sale.Date) != day {
			continue
		}
		label := "Crédito"
		if sale.IsPaid {
			label = "Pagada"
		}
		entries = append(entries, ActivityEntry{
			Kind:  ActivitySale,
			Title: fmt.Sprintf("Venta a %s", sale.CustomerName),
			Description: fmt.Sprintf("%dx %s - $%s (%s)",
				sale.Quantity, sale.ItemName, sale.TotalAmount.StringFixed(2), label),
			Timestamp: sale.Date,
		})
	}

	for _, exp := range s.Expenses {
		if uc.dayOf(exp.Date) != day {
			continue
		}
		entries = append(entries, ActivityEntry{
			Kind:        ActivityExpense,
			Title:       fmt.Sprintf("Gasto: %s", exp.Description),
			Description: fmt.Sprintf("$%s - %s", exp.Amount.StringFixed(2), exp.Category),
			Timestamp:   exp.Date,
		})
	}

	for _, item := range s.Inventory {
		if uc.dayOf(item.DateAdded) != day {
			continue
		}
		entries = append(entries, ActivityEntry{
			Kind:  ActivityInventory,
			Title: fmt.Sprintf("Alta de inventario: %s", item.Name),
			Description: fmt.Sprintf("%d unidades a $%s c/u",
				item.Quantity, item.UnitCost.StringFixed(2)),
			Timestamp: item.DateAdded,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// DailyReport datos para el reporte diario: ventas y gastos del día más las
// tres cifras de resumen. El formateo del documento es ajeno al núcleo.
type DailyReport struct {
	Day           string
	Sales         []entity.Sale
	Expenses      []entity.Expense
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// DailyReport arma el reporte del día indicado. TotalRevenue incluye ventas
// de contado y a crédito.
func (uc *UseCase) DailyReport(s *entity.LedgerSnapshot, day string) DailyReport {
	r := DailyReport{
		Day:           day,
		Sales:         []entity.Sale{},
		Expenses:      []entity.Expense{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	profit := decimal.Zero
	for _, sale := range s.Sales {
		if uc.dayOf(sale.Date) != day {
			continue
		}
		r.Sales = append(r.Sales, sale)
		r.TotalRevenue = r.TotalRevenue.Add(sale.TotalAmount)
		profit = profit.Add(sale.Profit)
	}
	for _, exp := range s.Expenses {
		if uc.dayOf(exp.Date) != day {
			continue
		}
		r.Expenses = append(r.Expenses, exp)
		r.TotalExpenses = r.TotalExpenses.Add(exp.Amount)
	}
	r.NetProfit = profit.Sub(r.TotalExpenses)
	return r
}

// InventoryReport datos para el reporte de inventario completo.
type InventoryReport struct {
	Items      []entity.InventoryItem
	ItemCount  int
	TotalValue decimal.Decimal
}

// InventoryReport lista todo el inventario con su valoración.
func (uc *UseCase) InventoryReport(s *entity.LedgerSnapshot) InventoryReport {
	v := uc.InventoryValuation(s)
	items := make([]entity.InventoryItem, len(s.Inventory))
	copy(items, s.Inventory)
	return InventoryReport{Items: items, ItemCount: v.ItemCount, TotalValue: v.TotalValue}
}

// CreditReport datos para el reporte de cartera: créditos pendientes y total
// por cobrar.
type CreditReport struct {
	Entries          []CreditEntry
	TotalOutstanding decimal.Decimal
}

// CreditReport arma el reporte de cartera pendiente.
func (uc *UseCase) CreditReport(s *entity.LedgerSnapshot) CreditReport {
	entries := uc.OutstandingCredit(s)
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Sale.TotalAmount)
	}
	return CreditReport{Entries: entries, TotalOutstanding: total}
}

// Today devuelve la clave del día actual según el reloj.
func (uc *UseCase) Today() string {
	return ledger.DayKey(uc.clock, uc.clock.Now())
}

func (uc *UseCase) dayOf(t time.Time) string {
	return ledger.DayKey(uc.clock, t)
}
