package snapshot_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-diaria/internal/domain"
	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
	"github.com/tu-usuario/caja-diaria/internal/domain/snapshot"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// buildSnapshot arma un snapshot válido con las cuatro colecciones pobladas.
func buildSnapshot() *entity.LedgerSnapshot {
	t0 := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	snap := entity.NewLedgerSnapshot()
	snap.Inventory = append(snap.Inventory,
		entity.InventoryItem{ID: "item-1", Name: "Widget", Description: "básico", Quantity: 7, UnitCost: dec("2.00"), DateAdded: t0},
		entity.InventoryItem{ID: "item-2", Name: "Gadget", Quantity: 0, UnitCost: dec("7.50"), DateAdded: t0.Add(time.Hour)},
	)
	snap.Sales = append(snap.Sales, entity.Sale{
		ID: "sale-1", CustomerName: "Alice", ItemID: "item-1", ItemName: "Widget",
		Quantity: 3, SellingPrice: dec("5.00"), TotalAmount: dec("15.00"),
		PaymentType: entity.PaymentTypeCredit, CostPrice: dec("2.00"), Profit: dec("9.00"),
		Date: t0.Add(2 * time.Hour), IsPaid: true,
	})
	snap.Expenses = append(snap.Expenses, entity.Expense{
		ID: "exp-1", Description: "Arriendo", Amount: dec("500.00"), Category: "overhead",
		Date: t0.Add(3 * time.Hour),
	})
	snap.CreditPayments = append(snap.CreditPayments, entity.CreditPayment{
		ID: "pay-1", SaleID: "sale-1", CustomerName: "Alice", Amount: dec("15.00"),
		DatePaid: t0.Add(4 * time.Hour),
	})
	return snap
}

// ──────────────────────────────────────────────────────────────────────────────
// Ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundTrip_CampoACampoYEnOrden(t *testing.T) {
	original := buildSnapshot()

	data, err := snapshot.Marshal(original)
	require.NoError(t, err)

	decoded, err := snapshot.Unmarshal(data)
	require.NoError(t, err)

	// La serialización es determinista: volver a serializar lo decodificado
	// produce exactamente los mismos bytes.
	data2, err := snapshot.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(data2))

	require.Len(t, decoded.Inventory, 2)
	assert.Equal(t, "item-1", decoded.Inventory[0].ID, "el orden de inserción se conserva")
	assert.Equal(t, "item-2", decoded.Inventory[1].ID)
	assert.True(t, decoded.Inventory[0].UnitCost.Equal(dec("2.00")))

	require.Len(t, decoded.Sales, 1)
	sale := decoded.Sales[0]
	assert.Equal(t, "Alice", sale.CustomerName)
	assert.True(t, sale.TotalAmount.Equal(dec("15.00")))
	assert.True(t, sale.Profit.Equal(dec("9.00")))
	assert.True(t, sale.Date.Equal(original.Sales[0].Date))
	assert.True(t, sale.IsPaid)

	require.Len(t, decoded.CreditPayments, 1)
	assert.Equal(t, "sale-1", decoded.CreditPayments[0].SaleID)
}

func TestMarshal_SnapshotVacioEmiteCuatroArreglos(t *testing.T) {
	data, err := snapshot.Marshal(entity.NewLedgerSnapshot())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, k := range []string{"inventory", "sales", "expenses", "creditPayments"} {
		assert.Contains(t, doc, k)
		assert.Equal(t, "[]", string(doc[k]), "colección %s vacía, no null", k)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos malformados
// ──────────────────────────────────────────────────────────────────────────────

func TestUnmarshal_FaltaUnaColeccion(t *testing.T) {
	for _, missing := range []string{"inventory", "sales", "expenses", "creditPayments"} {
		t.Run(missing, func(t *testing.T) {
			data, err := snapshot.Marshal(buildSnapshot())
			require.NoError(t, err)

			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &doc))
			delete(doc, missing)
			mutilado, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = snapshot.Unmarshal(mutilado)
			assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
		})
	}
}

func TestUnmarshal_NoEsJSON(t *testing.T) {
	_, err := snapshot.Unmarshal([]byte("esto no es json"))
	assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
}

func TestUnmarshal_CampoRequeridoAusente(t *testing.T) {
	doc := `{
		"inventory": [],
		"sales": [{
			"id": "sale-1", "customerName": "Alice", "itemId": "item-1",
			"itemName": "Widget", "quantity": 3, "sellingPrice": 5,
			"paymentType": "credit", "costPrice": 2, "profit": 9,
			"date": "2026-03-15T10:30:00Z", "isPaid": false
		}],
		"expenses": [],
		"creditPayments": []
	}`
	// falta totalAmount
	_, err := snapshot.Unmarshal([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
}

func TestUnmarshal_TipoIncorrecto(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
	}{
		{"cantidad no numérica", `"muchos"`},
		{"cantidad fraccionaria", `2.5`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := fmt.Sprintf(`{
				"inventory": [{
					"id": "item-1", "name": "Widget", "quantity": %s,
					"cost": 2, "dateAdded": "2026-03-15T10:30:00Z"
				}],
				"sales": [], "expenses": [], "creditPayments": []
			}`, tc.quantity)
			_, err := snapshot.Unmarshal([]byte(doc))
			assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
		})
	}
}

func TestUnmarshal_FechaInvalida(t *testing.T) {
	doc := `{
		"inventory": [{
			"id": "item-1", "name": "Widget", "quantity": 1,
			"cost": 2, "dateAdded": "el martes pasado"
		}],
		"sales": [], "expenses": [], "creditPayments": []
	}`
	_, err := snapshot.Unmarshal([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compatibilidad hacia adelante y hacia atrás
// ──────────────────────────────────────────────────────────────────────────────

func TestUnmarshal_CamposDesconocidosSeIgnoran(t *testing.T) {
	doc := `{
		"inventory": [{
			"id": "item-1", "name": "Widget", "quantity": 1,
			"cost": 2, "dateAdded": "2026-03-15T10:30:00Z",
			"color": "rojo", "ubicacion": {"pasillo": 4}
		}],
		"sales": [], "expenses": [], "creditPayments": [],
		"version": 9
	}`
	snap, err := snapshot.Unmarshal([]byte(doc))
	require.NoError(t, err)
	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, "Widget", snap.Inventory[0].Name)
}

func TestUnmarshal_IDsNumericosDeExportsViejos(t *testing.T) {
	// Los exports históricos usaban epoch millis numéricos como id
	doc := `{
		"inventory": [{
			"id": 1717171717171, "name": "Widget", "quantity": 1,
			"cost": 2, "dateAdded": "2026-03-15T10:30:00Z"
		}],
		"sales": [], "expenses": [], "creditPayments": []
	}`
	snap, err := snapshot.Unmarshal([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "1717171717171", snap.Inventory[0].ID)
}

func TestUnmarshal_DescripcionDeItemOpcional(t *testing.T) {
	doc := `{
		"inventory": [{
			"id": "item-1", "name": "Widget", "quantity": 1,
			"cost": 2, "dateAdded": "2026-03-15T10:30:00Z"
		}],
		"sales": [], "expenses": [], "creditPayments": []
	}`
	snap, err := snapshot.Unmarshal([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, snap.Inventory[0].Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes del modelo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_RechazaInvariantesRotos(t *testing.T) {
	t0 := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(*entity.LedgerSnapshot)
	}{
		{"cantidad de inventario negativa", func(s *entity.LedgerSnapshot) {
			s.Inventory[0].Quantity = -1
		}},
		{"costo unitario negativo", func(s *entity.LedgerSnapshot) {
			s.Inventory[0].UnitCost = dec("-2.00")
		}},
		{"nombre de artículo vacío", func(s *entity.LedgerSnapshot) {
			s.Inventory[0].Name = "  "
		}},
		{"cantidad de venta cero", func(s *entity.LedgerSnapshot) {
			s.Sales[0].Quantity = 0
		}},
		{"forma de pago desconocida", func(s *entity.LedgerSnapshot) {
			s.Sales[0].PaymentType = "efectivo"
		}},
		{"venta de contado sin pagar", func(s *entity.LedgerSnapshot) {
			s.Sales[0].PaymentType = entity.PaymentTypePaid
			s.Sales[0].IsPaid = false
		}},
		{"monto de gasto negativo", func(s *entity.LedgerSnapshot) {
			s.Expenses[0].Amount = dec("-1.00")
		}},
		{"id duplicado", func(s *entity.LedgerSnapshot) {
			s.Inventory = append(s.Inventory, entity.InventoryItem{
				ID: "item-1", Name: "Clon", Quantity: 1, UnitCost: dec("1.00"), DateAdded: t0,
			})
		}},
		{"pago sin venta asociada", func(s *entity.LedgerSnapshot) {
			s.CreditPayments[0].SaleID = ""
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := buildSnapshot()
			tc.mutate(snap)
			assert.ErrorIs(t, snapshot.Validate(snap), domain.ErrMalformedSnapshot)
		})
	}
}

func TestValidate_AceptaUnSnapshotValido(t *testing.T) {
	assert.NoError(t, snapshot.Validate(buildSnapshot()))
}
