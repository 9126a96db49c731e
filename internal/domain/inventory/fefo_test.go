package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func lote(id string, expiry *time.Time, receivedAt time.Time, remaining int64) entity.Lot {
	return entity.Lot{
		ID:                id,
		SiteID:            "site-1",
		IngredientID:      "harina",
		Unit:              "kg",
		ExpiryDate:        expiry,
		ReceivedAt:        receivedAt,
		RemainingQuantity: decimal.NewFromInt(remaining),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SortFEFO
// ──────────────────────────────────────────────────────────────────────────────

// El lote que caduca primero debe quedar de primero, y los lotes SIN fecha de
// caducidad siempre al final.
func TestSortFEFO_CaducaPrimeroSalePrimero(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("c", nil, recibido, 10),
		lote("a", datePtr(t, "2026-03-20"), recibido, 10),
		lote("b", datePtr(t, "2026-03-05"), recibido, 10),
	}

	inventory.SortFEFO(lots)

	assert.Equal(t, "b", lots[0].ID, "el lote que caduca primero va de primero")
	assert.Equal(t, "a", lots[1].ID)
	assert.Equal(t, "c", lots[2].ID, "el lote sin caducidad va al final")
}

// Misma caducidad: desempata la fecha de recepción; misma recepción: el id.
func TestSortFEFO_DesempatePorRecepcionYLuegoID(t *testing.T) {
	exp := datePtr(t, "2026-03-10")
	temprano := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tarde := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	lots := []entity.Lot{
		lote("z", exp, temprano, 10),
		lote("a", exp, tarde, 10),
		lote("m", exp, temprano, 10),
	}

	inventory.SortFEFO(lots)

	assert.Equal(t, []string{"m", "z", "a"}, []string{lots[0].ID, lots[1].ID, lots[2].ID})
}

// El orden debe ser idéntico en ejecuciones repetidas (determinismo).
func TestSortFEFO_Determinista(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	build := func() []entity.Lot {
		return []entity.Lot{
			lote("b", nil, recibido, 3),
			lote("a", datePtr(t, "2026-04-01"), recibido, 5),
			lote("d", datePtr(t, "2026-04-01"), recibido, 2),
			lote("c", datePtr(t, "2026-03-15"), recibido.Add(time.Hour), 1),
		}
	}

	first := build()
	inventory.SortFEFO(first)
	for i := 0; i < 10; i++ {
		again := build()
		inventory.SortFEFO(again)
		require.Equal(t, first, again, "el orden FEFO debe ser estable entre ejecuciones")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Allocate
// ──────────────────────────────────────────────────────────────────────────────

// Caso normal: la demanda cruza varios lotes en orden FEFO.
func TestAllocate_TomaDeVariosLotesEnOrdenFEFO(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("viejo", datePtr(t, "2026-03-05"), recibido, 4),
		lote("nuevo", datePtr(t, "2026-03-20"), recibido, 10),
	}

	allocs, err := inventory.Allocate("harina", lots, decimal.NewFromInt(6), "kg")
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, "viejo", allocs[0].LotID)
	assert.True(t, allocs[0].Quantity.Equal(decimal.NewFromInt(4)), "se agota el lote que caduca primero")
	assert.Equal(t, "nuevo", allocs[1].LotID)
	assert.True(t, allocs[1].Quantity.Equal(decimal.NewFromInt(2)), "el resto sale del siguiente lote")
}

// La demanda cabe exactamente en el primer lote: una sola toma.
func TestAllocate_DemandaExacta(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("a", datePtr(t, "2026-03-05"), recibido, 5),
		lote("b", datePtr(t, "2026-03-20"), recibido, 5),
	}

	allocs, err := inventory.Allocate("harina", lots, decimal.NewFromInt(5), "kg")
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "a", allocs[0].LotID)
	assert.True(t, allocs[0].Quantity.Equal(decimal.NewFromInt(5)))
}

// Lotes con saldo cero no participan en la asignación.
func TestAllocate_IgnoraLotesSinSaldo(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("vacio", datePtr(t, "2026-03-02"), recibido, 0),
		lote("lleno", datePtr(t, "2026-03-20"), recibido, 8),
	}

	allocs, err := inventory.Allocate("harina", lots, decimal.NewFromInt(3), "kg")
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "lleno", allocs[0].LotID)
}

// Stock insuficiente: error tipado con lo requerido y lo disponible, y
// NINGUNA asignación parcial.
func TestAllocate_StockInsuficiente(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("a", datePtr(t, "2026-03-05"), recibido, 2),
		lote("b", nil, recibido, 3),
	}

	allocs, err := inventory.Allocate("harina", lots, decimal.NewFromInt(10), "kg")
	assert.Nil(t, allocs, "no debe haber asignación parcial")

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "harina", insufficient.IngredientID)
	assert.True(t, insufficient.Required.Equal(decimal.NewFromInt(10)))
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

// Demanda no positiva: error de cantidad inválida.
func TestAllocate_DemandaNoPositiva(t *testing.T) {
	_, err := inventory.Allocate("harina", nil, decimal.Zero, "kg")
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = inventory.Allocate("harina", nil, decimal.NewFromInt(-1), "kg")
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

// Allocate es pura: no modifica los saldos de los lotes de entrada.
func TestAllocate_NoMutaLosLotes(t *testing.T) {
	recibido := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		lote("a", datePtr(t, "2026-03-05"), recibido, 4),
		lote("b", datePtr(t, "2026-03-20"), recibido, 6),
	}

	_, err := inventory.Allocate("harina", lots, decimal.NewFromInt(7), "kg")
	require.NoError(t, err)

	assert.True(t, lots[0].RemainingQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, lots[1].RemainingQuantity.Equal(decimal.NewFromInt(6)))
}
