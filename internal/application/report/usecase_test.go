package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
	"github.com/tu-usuario/caja-diaria/pkg/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time           { return c.now }
func (c *fakeClock) Location() *time.Location { return time.UTC }

type nopPersist struct{}

func (nopPersist) Save(*entity.LedgerSnapshot) error { return nil }
func (nopPersist) Load() (*entity.LedgerSnapshot, error) {
	return entity.NewLedgerSnapshot(), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) (*ledger.Store, *report.UseCase, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)}
	store := ledger.NewStore(clock, nopPersist{}, logger.Nop())
	return store, report.NewUseCase(clock), clock
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales del día
// ──────────────────────────────────────────────────────────────────────────────

func TestDayTotals_DiaSinMovimientos(t *testing.T) {
	store, reports, _ := newFixture(t)

	totals := reports.DayTotals(store.ExportSnapshot(), "2026-03-15")
	assert.True(t, totals.Cash.IsZero())
	assert.True(t, totals.Credit.IsZero())
	assert.True(t, totals.Expenses.IsZero())
	assert.True(t, totals.Profit.IsZero())
}

// Escenario completo del flujo crédito → pagado: los totales del día
// clasifican según IsPaid al momento de la consulta, no de la venta.
func TestEscenario_CreditoLiquidadoMueveLasCifras(t *testing.T) {
	store, reports, _ := newFixture(t)

	item, err := store.AddInventoryItem("Widget", "", 10, dec("2.00"))
	require.NoError(t, err)
	sale, err := store.RecordSale("Alice", item.ID, 3, dec("5.00"), entity.PaymentTypeCredit)
	require.NoError(t, err)

	today := reports.Today()
	totals := reports.DayTotals(store.ExportSnapshot(), today)
	assert.True(t, totals.Credit.Equal(dec("15.00")), "la venta a crédito suma en Credit")
	assert.True(t, totals.Cash.IsZero())
	assert.True(t, totals.Profit.Equal(dec("9.00")))
	assert.True(t, totals.Expenses.IsZero())

	_, err = store.MarkSalePaid(sale.ID)
	require.NoError(t, err)

	totals = reports.DayTotals(store.ExportSnapshot(), today)
	assert.True(t, totals.Cash.Equal(dec("15.00")), "tras liquidar, el monto pasa a Cash")
	assert.True(t, totals.Credit.IsZero())

	assert.Empty(t, reports.OutstandingCredit(store.ExportSnapshot()), "no queda cartera pendiente")
}

func TestEscenario_GastoReduceLaUtilidad(t *testing.T) {
	store, reports, _ := newFixture(t)

	item, err := store.AddInventoryItem("Widget", "", 10, dec("2.00"))
	require.NoError(t, err)
	_, err = store.RecordSale("Alice", item.ID, 3, dec("5.00"), entity.PaymentTypePaid)
	require.NoError(t, err)

	today := reports.Today()
	sinGasto := reports.DayTotals(store.ExportSnapshot(), today)

	_, err = store.AddExpense("Arriendo", dec("500.00"), "overhead")
	require.NoError(t, err)

	conGasto := reports.DayTotals(store.ExportSnapshot(), today)
	assert.True(t, conGasto.Expenses.Equal(dec("500.00")))
	assert.True(t, conGasto.Profit.Equal(sinGasto.Profit.Sub(dec("500.00"))),
		"la utilidad baja exactamente el monto del gasto")
}

func TestDayTotals_SoloCuentaElDiaIndicado(t *testing.T) {
	_, reports, clock := newFixture(t)

	snap := entity.NewLedgerSnapshot()
	snap.Sales = append(snap.Sales,
		saleOn(clock.now, "hoy", "15.00", "9.00", true),
		saleOn(clock.now.AddDate(0, 0, -1), "ayer", "100.00", "50.00", true),
	)

	totals := reports.DayTotals(snap, "2026-03-15")
	assert.True(t, totals.Cash.Equal(dec("15.00")), "la venta de ayer no cuenta hoy")
}

// ──────────────────────────────────────────────────────────────────────────────
// Valoración y cartera
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryValuation(t *testing.T) {
	store, reports, _ := newFixture(t)

	_, err := store.AddInventoryItem("Widget", "", 10, dec("2.50"))
	require.NoError(t, err)
	_, err = store.AddInventoryItem("Gadget", "", 3, dec("7.00"))
	require.NoError(t, err)

	v := reports.InventoryValuation(store.ExportSnapshot())
	assert.Equal(t, 2, v.ItemCount)
	assert.True(t, v.TotalValue.Equal(dec("46.00")), "10×2.50 + 3×7.00")
}

func TestOutstandingCredit_AntiguedadEnDiasCompletos(t *testing.T) {
	_, reports, clock := newFixture(t)

	snap := entity.NewLedgerSnapshot()
	snap.Sales = append(snap.Sales,
		// 3 días y medio atrás: se trunca a 3, no se redondea a 4
		saleOn(clock.now.Add(-84*time.Hour), "vieja", "10.00", "5.00", false),
		// fecha futura respecto al reloj: nunca negativa
		saleOn(clock.now.Add(12*time.Hour), "futura", "20.00", "8.00", false),
		// pagada: no aparece
		saleOn(clock.now.Add(-240*time.Hour), "pagada", "30.00", "9.00", true),
	)

	entries := reports.OutstandingCredit(snap)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].DaysOutstanding)
	assert.Equal(t, 0, entries[1].DaysOutstanding, "la antigüedad se recorta a cero")
}

func TestCreditReport_TotalPorCobrar(t *testing.T) {
	_, reports, clock := newFixture(t)

	snap := entity.NewLedgerSnapshot()
	snap.Sales = append(snap.Sales,
		saleOn(clock.now, "a", "10.00", "5.00", false),
		saleOn(clock.now, "b", "25.50", "8.00", false),
		saleOn(clock.now, "c", "99.00", "9.00", true),
	)

	r := reports.CreditReport(snap)
	require.Len(t, r.Entries, 2)
	assert.True(t, r.TotalOutstanding.Equal(dec("35.50")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Feed de actividad
// ──────────────────────────────────────────────────────────────────────────────

func TestActivityFeed_OrdenDescendenteYEmpatesEstables(t *testing.T) {
	_, reports, clock := newFixture(t)

	base := clock.now
	snap := entity.NewLedgerSnapshot()
	snap.Sales = append(snap.Sales,
		saleOn(base.Add(1*time.Hour), "primera", "10.00", "5.00", true),
		saleOn(base.Add(1*time.Hour), "segunda", "20.00", "8.00", false),
	)
	snap.Expenses = append(snap.Expenses, entity.Expense{
		ID: "e1", Description: "Arriendo", Amount: dec("500.00"), Category: "overhead",
		Date: base.Add(2 * time.Hour),
	})
	snap.Inventory = append(snap.Inventory, entity.InventoryItem{
		ID: "i1", Name: "Widget", Quantity: 10, UnitCost: dec("2.00"),
		DateAdded: base,
	})

	feed := reports.ActivityFeed(snap, "2026-03-15")
	require.Len(t, feed, 4)

	assert.Equal(t, report.ActivityExpense, feed[0].Kind, "lo más reciente va primero")
	assert.Equal(t, report.ActivitySale, feed[1].Kind)
	assert.Contains(t, feed[1].Title, "primera", "el empate conserva el orden de inserción")
	assert.Contains(t, feed[2].Title, "segunda")
	assert.Equal(t, report.ActivityInventory, feed[3].Kind)
}

func TestActivityFeed_ResumenesLegibles(t *testing.T) {
	_, reports, clock := newFixture(t)

	snap := entity.NewLedgerSnapshot()
	snap.Sales = append(snap.Sales, entity.Sale{
		ID: "s1", CustomerName: "Alice", ItemID: "i1", ItemName: "Widget",
		Quantity: 3, SellingPrice: dec("5.00"), TotalAmount: dec("15.00"),
		PaymentType: entity.PaymentTypeCredit, CostPrice: dec("2.00"),
		Profit: dec("9.00"), Date: clock.now, IsPaid: false,
	})

	feed := reports.ActivityFeed(snap, "2026-03-15")
	require.Len(t, feed, 1)
	assert.Equal(t, "Venta a Alice", feed[0].Title)
	assert.Equal(t, "3x Widget - $15.00 (Crédito)", feed[0].Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestDailyReport_CifrasDeResumen(t *testing.T) {
	store, reports, _ := newFixture(t)

	item, err := store.AddInventoryItem("Widget", "", 10, dec("2.00"))
	require.NoError(t, err)
	_, err = store.RecordSale("Alice", item.ID, 3, dec("5.00"), entity.PaymentTypePaid)
	require.NoError(t, err)
	_, err = store.RecordSale("Bob", item.ID, 2, dec("5.00"), entity.PaymentTypeCredit)
	require.NoError(t, err)
	_, err = store.AddExpense("Luz", dec("4.00"), "servicios")
	require.NoError(t, err)

	r := reports.DailyReport(store.ExportSnapshot(), reports.Today())
	require.Len(t, r.Sales, 2)
	require.Len(t, r.Expenses, 1)
	assert.True(t, r.TotalRevenue.Equal(dec("25.00")), "ingresos incluyen contado y crédito")
	assert.True(t, r.TotalExpenses.Equal(dec("4.00")))
	assert.True(t, r.NetProfit.Equal(dec("11.00")), "9 + 6 de utilidad menos 4 de gastos")
}

func TestInventoryReport(t *testing.T) {
	store, reports, _ := newFixture(t)

	_, err := store.AddInventoryItem("Widget", "", 10, dec("2.00"))
	require.NoError(t, err)

	r := reports.InventoryReport(store.ExportSnapshot())
	assert.Equal(t, 1, r.ItemCount)
	require.Len(t, r.Items, 1)
	assert.True(t, r.TotalValue.Equal(dec("20.00")))
}

// ── helpers ───────────────────────────────────────────────────────────────────

var saleSeq int

func saleOn(date time.Time, customer, total, profit string, paid bool) entity.Sale {
	saleSeq++
	paymentType := entity.PaymentTypeCredit
	if paid {
		paymentType = entity.PaymentTypePaid
	}
	return entity.Sale{
		ID:           fmt.Sprintf("sale-%d", saleSeq),
		CustomerName: customer,
		ItemID:       "item-1",
		ItemName:     "Widget",
		Quantity:     1,
		SellingPrice: dec(total),
		TotalAmount:  dec(total),
		PaymentType:  paymentType,
		CostPrice:    dec("1.00"),
		Profit:       dec(profit),
		Date:         date,
		IsPaid:       paid,
	}
}
