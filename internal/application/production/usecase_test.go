package production_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cocina-stock/internal/application/production"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: sede, ingredientes, recetas y lotes sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store   *memory.Store
	uc      *production.ExecuteUseCase
	siteID  string
	harina  string
	leche   string
	panID   string // receta: 0.5 kg harina por unidad
	tortaID string // receta: 0.2 kg harina + 0.3 l leche por unidad
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	siteRepo := memory.NewSiteRepository(store)
	ingredientRepo := memory.NewIngredientRepository(store)
	recipeRepo := memory.NewRecipeRepository(store)
	txRunner := memory.NewTxRunner(store)

	f := &fixture{
		store:   store,
		siteID:  uuid.New().String(),
		harina:  uuid.New().String(),
		leche:   uuid.New().String(),
		panID:   uuid.New().String(),
		tortaID: uuid.New().String(),
	}
	require.NoError(t, siteRepo.Create(&entity.Site{ID: f.siteID, Name: "Cocina Central"}))
	require.NoError(t, ingredientRepo.Create(&entity.Ingredient{ID: f.harina, Name: "Harina", Unit: "kg"}))
	require.NoError(t, ingredientRepo.Create(&entity.Ingredient{ID: f.leche, Name: "Leche", Unit: "l"}))

	require.NoError(t, recipeRepo.Create(
		&entity.Recipe{ID: f.panID, SiteID: f.siteID, Name: "Pan campesino"},
		[]entity.BOMLine{
			{IngredientID: f.harina, QuantityPerUnit: decimal.NewFromFloat(0.5), Unit: "kg"},
		},
	))
	require.NoError(t, recipeRepo.Create(
		&entity.Recipe{ID: f.tortaID, SiteID: f.siteID, Name: "Torta de leche"},
		[]entity.BOMLine{
			{IngredientID: f.harina, QuantityPerUnit: decimal.NewFromFloat(0.2), Unit: "kg"},
			{IngredientID: f.leche, QuantityPerUnit: decimal.NewFromFloat(0.3), Unit: "l"},
		},
	))

	f.uc = production.NewExecuteUseCase(txRunner, recipeRepo, siteRepo)
	return f
}

// seedLot crea un lote y su movimiento RECEIPT; devuelve el id del lote.
func (f *fixture) seedLot(t *testing.T, ingredientID, unit string, quantity float64, expiry *time.Time) string {
	t.Helper()
	lotRepo := memory.NewLotRepository(f.store)
	ledgerRepo := memory.NewLedgerRepository(f.store)

	lotID := uuid.New().String()
	qty := decimal.NewFromFloat(quantity)
	require.NoError(t, lotRepo.Create(&entity.Lot{
		ID:           lotID,
		SiteID:       f.siteID,
		IngredientID: ingredientID,
		Unit:         unit,
		ExpiryDate:   expiry,
		ReceivedAt:   time.Now().UTC(),
	}))
	_, err := ledgerRepo.Append(&entity.StockMovement{
		SiteID:       f.siteID,
		IngredientID: ingredientID,
		LotID:        lotID,
		Type:         entity.MovementTypeRECEIPT,
		Quantity:     qty,
		Unit:         unit,
		Reference:    "seed",
	})
	require.NoError(t, err)
	return lotID
}

func (f *fixture) remaining(t *testing.T, lotID string) decimal.Decimal {
	t.Helper()
	balance, err := memory.NewLedgerRepository(f.store).RemainingQuantity(lotID)
	require.NoError(t, err)
	return balance
}

func expiryIn(days int) *time.Time {
	d := time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Éxito
// ──────────────────────────────────────────────────────────────────────────────

// 16 panes × 0.5 kg = 8 kg de harina de un lote de 10 kg.
func TestExecute_ProduccionSencillaDescuentaFEFO(t *testing.T) {
	f := newFixture(t)
	lotID := f.seedLot(t, f.harina, "kg", 10, expiryIn(1))

	result, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Date:   time.Now().UTC(),
		Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(16)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.LotsCreated)
	assert.Equal(t, 1, result.ConsumptionRecordsCreated)
	assert.Equal(t, 1, result.MovementsCreated)
	require.Len(t, result.ProducedLotIDs, 1)
	require.Len(t, result.Demand, 1)
	assert.Equal(t, f.harina, result.Demand[0].IngredientID)
	assert.True(t, result.Demand[0].Quantity.Equal(decimal.NewFromInt(8)))

	assert.True(t, f.remaining(t, lotID).Equal(decimal.NewFromInt(2)),
		"del lote de 10 kg deben quedar 2 kg")
}

// La demanda cruza dos lotes: primero se agota el que caduca antes.
func TestExecute_ConsumoCruzaLotesEnOrdenFEFO(t *testing.T) {
	f := newFixture(t)
	caducaPronto := f.seedLot(t, f.harina, "kg", 3, expiryIn(1))
	caducaTarde := f.seedLot(t, f.harina, "kg", 10, expiryIn(30))

	// 10 panes × 0.5 kg = 5 kg
	result, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.MovementsCreated, "un movimiento por lote consumido")
	assert.Equal(t, 2, result.ConsumptionRecordsCreated)
	assert.True(t, f.remaining(t, caducaPronto).IsZero(), "el lote que caduca primero se agota")
	assert.True(t, f.remaining(t, caducaTarde).Equal(decimal.NewFromInt(8)))
}

// Dos líneas que comparten harina: la demanda se agrega antes de asignar y
// el consumo se re-atribuye a cada tanda en el orden original.
func TestExecute_DemandaAgregadaEntreRecetas(t *testing.T) {
	f := newFixture(t)
	lotHarina := f.seedLot(t, f.harina, "kg", 10, expiryIn(5))
	lotLeche := f.seedLot(t, f.leche, "l", 10, expiryIn(5))

	// pan: 10 × 0.5 = 5 kg harina; torta: 5 × 0.2 = 1 kg harina + 5 × 0.3 = 1.5 l leche
	result, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines: []production.RequestLine{
			{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(10)},
			{RecipeID: f.tortaID, QuantityToProduce: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.LotsCreated)
	require.Len(t, result.Demand, 2)
	demanda := make(map[string]decimal.Decimal)
	for _, d := range result.Demand {
		demanda[d.IngredientID] = d.Quantity
	}
	assert.True(t, demanda[f.harina].Equal(decimal.NewFromInt(6)), "5 + 1 kg de harina")
	assert.True(t, demanda[f.leche].Equal(decimal.NewFromFloat(1.5)))

	assert.True(t, f.remaining(t, lotHarina).Equal(decimal.NewFromInt(4)))
	assert.True(t, f.remaining(t, lotLeche).Equal(decimal.NewFromFloat(8.5)))

	// Cada tanda queda enlazada con sus lotes consumidos
	consumptionRepo := memory.NewConsumptionRecordRepository(f.store)
	for _, producedID := range result.ProducedLotIDs {
		records, err := consumptionRepo.ListByProducedLot(producedID)
		require.NoError(t, err)
		assert.NotEmpty(t, records, "toda tanda con BOM debe tener consumos enlazados")
		for _, rec := range records {
			assert.NotEmpty(t, rec.MovementID, "cada consumo referencia su movimiento del libro")
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos: nada se persiste
// ──────────────────────────────────────────────────────────────────────────────

// Si un ingrediente no alcanza, NINGUNA receta de la petición se ejecuta.
func TestExecute_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	lotID := f.seedLot(t, f.harina, "kg", 60, expiryIn(10))

	before := f.store.Counts()

	// 160 panes × 0.5 kg = 80 kg > 60 kg disponibles
	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(160)}},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, f.harina, insufficient.IngredientID)
	assert.True(t, insufficient.Required.Equal(decimal.NewFromInt(80)))
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(60)))

	after := f.store.Counts()
	assert.Equal(t, before, after, "el rollback no debe dejar rastro")
	assert.True(t, f.remaining(t, lotID).Equal(decimal.NewFromInt(60)), "el saldo del lote no cambia")
}

// Con dos líneas, el faltante de la segunda receta revierte también la primera.
func TestExecute_FalloParcialRevierteTodaLaPeticion(t *testing.T) {
	f := newFixture(t)
	f.seedLot(t, f.harina, "kg", 100, expiryIn(10))
	// sin leche: la torta no puede producirse

	before := f.store.Counts()

	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines: []production.RequestLine{
			{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(10)},
			{RecipeID: f.tortaID, QuantityToProduce: decimal.NewFromInt(5)},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, before, f.store.Counts(), "la tanda de pan tampoco debe persistirse")
}

// Receta inexistente.
func TestExecute_RecetaInexistente(t *testing.T) {
	f := newFixture(t)
	f.seedLot(t, f.harina, "kg", 10, expiryIn(10))

	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines:  []production.RequestLine{{RecipeID: uuid.New().String(), QuantityToProduce: decimal.NewFromInt(1)}},
	})

	var notFound *domain.RecipeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}

// Cantidad a producir no positiva.
func TestExecute_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.Zero}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

// Sede inexistente y petición vacía.
func TestExecute_EntradaInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: uuid.New().String(),
		Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(1)}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.Execute(context.Background(), production.Request{SiteID: f.siteID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Receta sin BOM: warning, no error; la tanda se registra sin consumos.
func TestExecute_RecetaSinBOMProduceConAdvertencia(t *testing.T) {
	f := newFixture(t)
	recipeRepo := memory.NewRecipeRepository(f.store)
	vaciaID := uuid.New().String()
	require.NoError(t, recipeRepo.Create(
		&entity.Recipe{ID: vaciaID, SiteID: f.siteID, Name: "Agua embotellada"}, nil,
	))

	result, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines:  []production.RequestLine{{RecipeID: vaciaID, QuantityToProduce: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.LotsCreated)
	assert.Zero(t, result.MovementsCreated)
	assert.Zero(t, result.ConsumptionRecordsCreated)
	assert.NotEmpty(t, result.Warnings, "la receta sin BOM debe reportarse como advertencia")
}

// Mismo ingrediente con unidades distintas entre recetas: error, no conversión.
func TestExecute_ConflictoDeUnidades(t *testing.T) {
	f := newFixture(t)
	recipeRepo := memory.NewRecipeRepository(f.store)
	otraID := uuid.New().String()
	require.NoError(t, recipeRepo.Create(
		&entity.Recipe{ID: otraID, SiteID: f.siteID, Name: "Masa en gramos"},
		[]entity.BOMLine{
			{IngredientID: f.harina, QuantityPerUnit: decimal.NewFromInt(500), Unit: "g"},
		},
	))
	f.seedLot(t, f.harina, "kg", 100, expiryIn(10))

	_, err := f.uc.Execute(context.Background(), production.Request{
		SiteID: f.siteID,
		Lines: []production.RequestLine{
			{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(1)},
			{RecipeID: otraID, QuantityToProduce: decimal.NewFromInt(1)},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrUnitMismatch))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos peticiones simultáneas de 6 kg contra un lote de 10 kg: exactamente una
// debe tener éxito y el saldo final debe reflejar solo ese consumo.
func TestExecute_PeticionesConcurrentesSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	lotID := f.seedLot(t, f.harina, "kg", 10, expiryIn(10))

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			// 12 panes × 0.5 kg = 6 kg
			_, err := f.uc.Execute(context.Background(), production.Request{
				SiteID: f.siteID,
				Lines:  []production.RequestLine{{RecipeID: f.panID, QuantityToProduce: decimal.NewFromInt(12)}},
			})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range results {
		if err == nil {
			exitos++
		} else {
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
				"la petición perdedora debe fallar por falta de stock, no por otra causa: %v", err)
		}
	}
	assert.Equal(t, 1, exitos, "solo una petición puede consumir los 6 kg")
	assert.True(t, f.remaining(t, lotID).Equal(decimal.NewFromInt(4)))
}
