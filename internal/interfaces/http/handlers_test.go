package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cocina-stock/internal/application/catalog"
	appinventory "github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/application/production"
	"github.com/jhoicas/cocina-stock/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/cocina-stock/internal/interfaces/http"
)

// buildAPI levanta la API completa sobre el backend en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	siteRepo := memory.NewSiteRepository(store)
	ingredientRepo := memory.NewIngredientRepository(store)
	supplierRepo := memory.NewSupplierRepository(store)
	recipeRepo := memory.NewRecipeRepository(store)
	lotRepo := memory.NewLotRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	traceRepo := memory.NewTraceabilityRepository(store)
	txRunner := memory.NewTxRunner(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:        catalog.NewUseCase(siteRepo, ingredientRepo, supplierRepo, recipeRepo),
		ReceiveUC:        appinventory.NewReceiveUseCase(txRunner, siteRepo, ingredientRepo, supplierRepo),
		RegisterMovement: appinventory.NewRegisterMovementUseCase(txRunner),
		AuditUC:          appinventory.NewAuditUseCase(ledgerRepo, lotRepo),
		TraceabilityUC:   appinventory.NewTraceabilityUseCase(traceRepo),
		ExecuteUC:        production.NewExecuteUseCase(txRunner, recipeRepo, siteRepo),
		JWTSecret:        testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// Flujo completo por HTTP: catálogo → recepción → producción → trazabilidad.
func TestAPI_FlujoCompletoDeProduccion(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")
	cocina := tokenForRole(t, "cocina")
	bodega := tokenForRole(t, "bodega")

	// Catálogo (admin)
	var site struct {
		ID string `json:"id"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/sites/", admin, fiber.Map{"name": "Cocina Central"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &site)

	var harina struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/ingredients/", admin, fiber.Map{"name": "Harina", "unit": "kg"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &harina)

	var receta struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/recipes/", cocina, fiber.Map{
		"site_id": site.ID,
		"name":    "Pan campesino",
		"lines": []fiber.Map{
			{"ingredient_id": harina.ID, "quantity_per_unit": "0.5", "unit": "kg"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &receta)

	// Recepción (bodega): 10 kg que caducan mañana
	expiry := time.Now().UTC().AddDate(0, 0, 1).Format(time.RFC3339)
	var recibo struct {
		LotID string `json:"lot_id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/receipts", bodega, fiber.Map{
		"site_id":       site.ID,
		"ingredient_id": harina.ID,
		"quantity":      "10",
		"unit":          "kg",
		"expiry_date":   expiry,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &recibo)
	require.NotEmpty(t, recibo.LotID)

	// Producción (cocina): 16 panes × 0.5 kg = 8 kg
	today := time.Now().UTC().Format(time.RFC3339)
	var result struct {
		LotsCreated      int `json:"lots_created"`
		MovementsCreated int `json:"movements_created"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/production/execute", cocina, fiber.Map{
		"site_id": site.ID,
		"date":    today,
		"lines": []fiber.Map{
			{"recipe_id": receta.ID, "quantity_to_produce": "16"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &result)
	assert.Equal(t, 1, result.LotsCreated)
	assert.Equal(t, 1, result.MovementsCreated)

	// El saldo del lote quedó en 2 kg
	var recompute struct {
		RemainingQuantity string `json:"remaining_quantity"`
	}
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/inventory/lots/%s/recompute", recibo.LotID), admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &recompute)
	assert.Equal(t, "2", recompute.RemainingQuantity)

	// Trazabilidad del día: una tanda y un consumo
	day := time.Now().UTC().Format("2006-01-02")
	var trace struct {
		Total  int `json:"total"`
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/traceability/events?site_id=%s&recipe_id=%s&date=%s", site.ID, receta.ID, day),
		cocina, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &trace)
	require.Equal(t, 2, trace.Total)
	assert.Equal(t, "PRODUCED", trace.Events[0].Type)
	assert.Equal(t, "CONSUMED", trace.Events[1].Type)
}

// Stock insuficiente por HTTP → 409 con código INSUFFICIENT_STOCK.
func TestAPI_ProduccionSinStockDevuelve409(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")
	cocina := tokenForRole(t, "cocina")

	var site struct {
		ID string `json:"id"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/sites/", admin, fiber.Map{"name": "Cocina Sur"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &site)

	var harina struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/ingredients/", admin, fiber.Map{"name": "Harina", "unit": "kg"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &harina)

	var receta struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/recipes/", admin, fiber.Map{
		"site_id": site.ID,
		"name":    "Pan campesino",
		"lines": []fiber.Map{
			{"ingredient_id": harina.ID, "quantity_per_unit": "0.5", "unit": "kg"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &receta)

	// Sin recepción previa: no hay stock
	resp = doJSON(t, app, http.MethodPost, "/api/production/execute", cocina, fiber.Map{
		"site_id": site.ID,
		"lines": []fiber.Map{
			{"recipe_id": receta.ID, "quantity_to_produce": "4"},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errBody struct {
		Code string `json:"code"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
}

// RBAC: bodega no puede ejecutar producción.
func TestAPI_BodegaNoEjecutaProduccion(t *testing.T) {
	app := buildAPI(t)
	bodega := tokenForRole(t, "bodega")

	resp := doJSON(t, app, http.MethodPost, "/api/production/execute", bodega, fiber.Map{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
