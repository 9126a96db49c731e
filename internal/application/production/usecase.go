package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/inventory"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// ExecuteUseCase convierte una petición de producción en estado del ledger
// con semántica todo-o-nada:
//
//  1. Expandir cada línea vía BOM y agregar la demanda por ingrediente.
//  2. Dentro de una transacción: asignar TODOS los ingredientes por FEFO
//     (filas de lote bloqueadas, ingredientes en orden fijo).
//  3. Solo si todo asignó: crear ProducedLot por línea, ConsumptionRecord
//     por (tanda, lote, cantidad) y un movimiento CONSUMPTION por toma,
//     re-atribuidos a la línea original para trazabilidad.
//
// Cualquier fallo aborta la petición completa sin escribir nada.
type ExecuteUseCase struct {
	txRunner   TxRunner
	recipeRepo repository.RecipeRepository
	siteRepo   repository.SiteRepository
}

// NewExecuteUseCase construye el caso de uso.
func NewExecuteUseCase(txRunner TxRunner, recipeRepo repository.RecipeRepository, siteRepo repository.SiteRepository) *ExecuteUseCase {
	return &ExecuteUseCase{txRunner: txRunner, recipeRepo: recipeRepo, siteRepo: siteRepo}
}

// RequestLine una receta y cuántas unidades producir.
type RequestLine struct {
	RecipeID          string
	QuantityToProduce decimal.Decimal
}

// Request petición de producción (entrada transitoria; se evalúa y descarta).
type Request struct {
	SiteID string
	Date   time.Time
	Lines  []RequestLine
}

// IngredientDemand demanda total de un ingrediente ("besoin").
type IngredientDemand struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// Result resumen de una ejecución exitosa.
type Result struct {
	ProducedLotIDs            []string
	LotsCreated               int
	ConsumptionRecordsCreated int
	MovementsCreated          int
	Demand                    []IngredientDemand
	Warnings                  []string
}

// lineExpansion guarda la expansión BOM de una línea, en el orden original
// de la petición (la re-atribución del consumo lo preserva).
type lineExpansion struct {
	line RequestLine
	bom  []entity.BOMLine
}

// Execute procesa la petición. Los errores de negocio (stock insuficiente,
// receta inexistente, cantidades inválidas) se detectan antes del commit y
// se devuelven sin mutar nada; el commit es la única unidad de durabilidad.
func (uc *ExecuteUseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.SiteID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	site, err := uc.siteRepo.GetByID(req.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	var warnings []string

	// 1) Expandir recetas y agregar demanda (mapa por ingrediente: la
	// agregación es independiente del orden de las líneas).
	expansions := make([]lineExpansion, 0, len(req.Lines))
	demand := make(map[string]decimal.Decimal)
	demandUnit := make(map[string]string)

	for _, line := range req.Lines {
		if line.QuantityToProduce.LessThanOrEqual(decimal.Zero) {
			return nil, &domain.InvalidQuantityError{
				Reason: fmt.Sprintf("la cantidad a producir de la receta %s debe ser > 0", line.RecipeID),
			}
		}
		bom, err := uc.recipeRepo.GetBOM(line.RecipeID)
		if err != nil {
			return nil, err
		}
		if len(bom) == 0 {
			warnings = append(warnings, fmt.Sprintf("la receta %s no tiene líneas de BOM; se produce sin consumo", line.RecipeID))
		}
		kept := make([]entity.BOMLine, 0, len(bom))
		for _, bl := range bom {
			if bl.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
				warnings = append(warnings, fmt.Sprintf("línea BOM con cantidad no positiva ignorada (receta %s, ingrediente %s)", line.RecipeID, bl.IngredientID))
				continue
			}
			needed := bl.QuantityPerUnit.Mul(line.QuantityToProduce)
			if prev, ok := demandUnit[bl.IngredientID]; ok && prev != bl.Unit {
				return nil, fmt.Errorf("%w: ingrediente %s en %s y %s", domain.ErrUnitMismatch, bl.IngredientID, prev, bl.Unit)
			}
			demandUnit[bl.IngredientID] = bl.Unit
			demand[bl.IngredientID] = demand[bl.IngredientID].Add(needed)
			kept = append(kept, bl)
		}
		expansions = append(expansions, lineExpansion{line: line, bom: kept})
	}

	// Orden fijo de ingredientes: asignación determinista y bloqueo de
	// lotes siempre en el mismo orden entre peticiones concurrentes.
	ingredients := make([]string, 0, len(demand))
	for id := range demand {
		ingredients = append(ingredients, id)
	}
	sort.Strings(ingredients)

	occurredAt := req.Date
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	result := &Result{Warnings: warnings}
	for _, id := range ingredients {
		result.Demand = append(result.Demand, IngredientDemand{
			IngredientID: id,
			Quantity:     demand[id],
			Unit:         demandUnit[id],
		})
	}

	// 2) + 3) Asignar y confirmar dentro de UNA transacción.
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		ledgerRepo repository.LedgerRepository,
		producedRepo repository.ProducedLotRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error {
		// Asignación FEFO por ingrediente sobre filas bloqueadas. Si un solo
		// ingrediente falla, el rollback deja todo como estaba.
		cursors := make(map[string]*allocationCursor, len(ingredients))
		for _, ingredientID := range ingredients {
			lots, err := lotRepo.ListAllocatableForUpdate(req.SiteID, ingredientID)
			if err != nil {
				return err
			}
			allocs, err := inventory.Allocate(ingredientID, lots, demand[ingredientID], demandUnit[ingredientID])
			if err != nil {
				return err
			}
			cursors[ingredientID] = &allocationCursor{allocations: allocs}
		}

		// Commit: una tanda por línea, en el orden original de la petición.
		for _, exp := range expansions {
			produced := &entity.ProducedLot{
				ID:               uuid.New().String(),
				SiteID:           req.SiteID,
				RecipeID:         exp.line.RecipeID,
				QuantityProduced: exp.line.QuantityToProduce,
				Unit:             "unidad",
				ProducedAt:       occurredAt,
			}
			if err := producedRepo.Create(produced); err != nil {
				return err
			}
			result.ProducedLotIDs = append(result.ProducedLotIDs, produced.ID)
			result.LotsCreated++

			for _, bl := range exp.bom {
				needed := bl.QuantityPerUnit.Mul(exp.line.QuantityToProduce)
				takes := cursors[bl.IngredientID].take(needed)
				for _, tk := range takes {
					movementID, err := ledgerRepo.Append(&entity.StockMovement{
						SiteID:       req.SiteID,
						IngredientID: bl.IngredientID,
						LotID:        tk.LotID,
						Type:         entity.MovementTypeCONSUMPTION,
						Quantity:     tk.Quantity.Neg(),
						Unit:         tk.Unit,
						Reference:    produced.ID,
						OccurredAt:   occurredAt,
					})
					if err != nil {
						return err
					}
					result.MovementsCreated++

					if err := consumptionRepo.Create(&entity.ConsumptionRecord{
						ProducedLotID: produced.ID,
						ConsumedLotID: tk.LotID,
						IngredientID:  bl.IngredientID,
						MovementID:    movementID,
						Quantity:      tk.Quantity,
						Unit:          tk.Unit,
					}); err != nil {
						return err
					}
					result.ConsumptionRecordsCreated++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// allocationCursor reparte la asignación agregada de un ingrediente entre
// las líneas originales de la petición, consumiéndola secuencialmente.
// La suma asignada cubre exactamente la demanda agregada, así que take
// nunca se queda corto.
type allocationCursor struct {
	allocations []inventory.Allocation
	index       int
	used        decimal.Decimal // ya repartido de allocations[index]
}

func (c *allocationCursor) take(quantity decimal.Decimal) []inventory.Allocation {
	var out []inventory.Allocation
	remaining := quantity
	for remaining.GreaterThan(decimal.Zero) && c.index < len(c.allocations) {
		current := c.allocations[c.index]
		left := current.Quantity.Sub(c.used)
		take := decimal.Min(left, remaining)
		if take.GreaterThan(decimal.Zero) {
			out = append(out, inventory.Allocation{LotID: current.LotID, Quantity: take, Unit: current.Unit})
			c.used = c.used.Add(take)
			remaining = remaining.Sub(take)
		}
		if c.used.GreaterThanOrEqual(current.Quantity) {
			c.index++
			c.used = decimal.Zero
		}
	}
	return out
}
