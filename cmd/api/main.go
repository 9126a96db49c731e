package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/cocina-stock/internal/application/catalog"
	"github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/application/production"
	"github.com/jhoicas/cocina-stock/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cocina-stock/internal/interfaces/http"
	"github.com/jhoicas/cocina-stock/pkg/config"
	"github.com/jhoicas/cocina-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas y catálogo fuera de transacción)
	siteRepo := postgres.NewSiteRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	traceRepo := postgres.NewTraceabilityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(siteRepo, ingredientRepo, supplierRepo, recipeRepo)
	receiveUC := inventory.NewReceiveUseCase(txRunner, siteRepo, ingredientRepo, supplierRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	auditUC := inventory.NewAuditUseCase(ledgerRepo, lotRepo)
	traceabilityUC := inventory.NewTraceabilityUseCase(traceRepo)
	executeUC := production.NewExecuteUseCase(txRunner, recipeRepo, siteRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cocina Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:        catalogUC,
		ReceiveUC:        receiveUC,
		RegisterMovement: registerMovementUC,
		AuditUC:          auditUC,
		TraceabilityUC:   traceabilityUC,
		ExecuteUC:        executeUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
