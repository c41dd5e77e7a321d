package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
)

// DayTotalsResponse cifras del día para el dashboard.
type DayTotalsResponse struct {
	Cash     decimal.Decimal `json:"cash"`
	Credit   decimal.Decimal `json:"credit"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// FromDayTotals convierte los totales a DTO redondeado.
func FromDayTotals(t report.DayTotals) DayTotalsResponse {
	return DayTotalsResponse{
		Cash:     t.Cash.Round(2),
		Credit:   t.Credit.Round(2),
		Expenses: t.Expenses.Round(2),
		Profit:   t.Profit.Round(2),
	}
}

// ActivityEntryResponse una entrada del feed de actividad.
type ActivityEntryResponse struct {
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// DashboardResponse totales del día más el feed de actividad.
type DashboardResponse struct {
	Date       string                  `json:"date"`
	Totals     DayTotalsResponse       `json:"totals"`
	Activities []ActivityEntryResponse `json:"activities"`
}

// FromActivityFeed convierte el feed a DTOs.
func FromActivityFeed(entries []report.ActivityEntry) []ActivityEntryResponse {
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityEntryResponse{
			Kind:        e.Kind,
			Title:       e.Title,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}

// CreditEntryResponse un crédito pendiente con su antigüedad.
type CreditEntryResponse struct {
	Sale            SaleResponse `json:"sale"`
	DaysOutstanding int          `json:"days_outstanding"`
}

// FromCreditEntries convierte la cartera a DTOs.
func FromCreditEntries(entries []report.CreditEntry) []CreditEntryResponse {
	out := make([]CreditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, CreditEntryResponse{
			Sale:            FromSale(e.Sale),
			DaysOutstanding: e.DaysOutstanding,
		})
	}
	return out
}

// DailyReportResponse datos del reporte diario.
type DailyReportResponse struct {
	Date          string            `json:"date"`
	Sales         []SaleResponse    `json:"sales"`
	Expenses      []ExpenseResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	NetProfit     decimal.Decimal   `json:"net_profit"`
}

// FromDailyReport convierte el reporte diario a DTO.
func FromDailyReport(r report.DailyReport) DailyReportResponse {
	sales := make([]SaleResponse, 0, len(r.Sales))
	for _, s := range r.Sales {
		sales = append(sales, FromSale(s))
	}
	expenses := make([]ExpenseResponse, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		expenses = append(expenses, FromExpense(e))
	}
	return DailyReportResponse{
		Date:          r.Day,
		Sales:         sales,
		Expenses:      expenses,
		TotalRevenue:  r.TotalRevenue.Round(2),
		TotalExpenses: r.TotalExpenses.Round(2),
		NetProfit:     r.NetProfit.Round(2),
	}
}

// InventoryReportResponse datos del reporte de inventario.
type InventoryReportResponse struct {
	Items      []InventoryItemResponse `json:"items"`
	ItemCount  int                     `json:"item_count"`
	TotalValue decimal.Decimal         `json:"total_value"`
}

// FromInventoryReport convierte el reporte de inventario a DTO.
func FromInventoryReport(r report.InventoryReport) InventoryReportResponse {
	items := make([]InventoryItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, FromInventoryItem(item))
	}
	return InventoryReportResponse{
		Items:      items,
		ItemCount:  r.ItemCount,
		TotalValue: r.TotalValue.Round(2),
	}
}

// CreditReportResponse datos del reporte de cartera.
type CreditReportResponse struct {
	Entries          []CreditEntryResponse `json:"entries"`
	TotalOutstanding decimal.Decimal       `json:"total_outstanding"`
}

// FromCreditReport convierte el reporte de cartera a DTO.
func FromCreditReport(r report.CreditReport) CreditReportResponse {
	return CreditReportResponse{
		Entries:          FromCreditEntries(r.Entries),
		TotalOutstanding: r.TotalOutstanding.Round(2),
	}
}
