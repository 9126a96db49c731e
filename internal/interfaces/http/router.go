package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cocina-stock/internal/application/catalog"
	"github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC        *catalog.UseCase
	ReceiveUC        *inventory.ReceiveUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	AuditUC          *inventory.AuditUseCase
	TraceabilityUC   *inventory.TraceabilityUseCase
	ExecuteUC        *production.ExecuteUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido; la escritura es solo admin)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	sites := protected.Group("/sites")
	sites.Post("/", RequireRole(RoleAdmin), catalogHandler.CreateSite)
	sites.Get("/", catalogHandler.ListSites)

	ingredients := protected.Group("/ingredients")
	ingredients.Post("/", RequireRole(RoleAdmin), catalogHandler.CreateIngredient)
	ingredients.Get("/", catalogHandler.ListIngredients)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", RequireRole(RoleAdmin), catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)

	recipes := protected.Group("/recipes")
	recipes.Post("/", RequireRole(RoleAdmin, RoleCocina), catalogHandler.CreateRecipe)
	recipes.Get("/", catalogHandler.ListRecipes)

	// Inventario: recepciones, mermas, ajustes y lotes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveUC, deps.RegisterMovement, deps.AuditUC)
	invGroup.Post("/receipts", RequireRole(RoleAdmin, RoleBodega), inventoryHandler.Receive)
	invGroup.Post("/losses", RequireRole(RoleAdmin, RoleBodega, RoleCocina), inventoryHandler.RegisterLoss)
	invGroup.Post("/adjustments", RequireRole(RoleAdmin, RoleBodega), inventoryHandler.RegisterAdjustment)
	invGroup.Get("/lots", inventoryHandler.ListLots)
	invGroup.Get("/lots/:id/movements", inventoryHandler.LotMovements)
	invGroup.Post("/lots/:id/recompute", RequireRole(RoleAdmin), inventoryHandler.RecomputeLot)

	// Producción (protegido)
	prodGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ExecuteUC)
	prodGroup.Post("/execute", RequireRole(RoleAdmin, RoleCocina), productionHandler.Execute)

	// Trazabilidad (protegido, solo lectura)
	traceGroup := protected.Group("/traceability")
	traceabilityHandler := NewTraceabilityHandler(deps.TraceabilityUC)
	traceGroup.Get("/events", traceabilityHandler.Events)
}
