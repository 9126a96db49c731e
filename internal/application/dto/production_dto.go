package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionLineRequest una receta y cuántas unidades producir.
type ProductionLineRequest struct {
	RecipeID          string          `json:"recipe_id"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
}

// ExecuteProductionRequest body para POST /api/production/execute.
type ExecuteProductionRequest struct {
	SiteID string                  `json:"site_id"`
	Date   time.Time               `json:"date"`
	Lines  []ProductionLineRequest `json:"lines"`
}

// IngredientDemandDTO demanda agregada de un ingrediente ("besoin").
type IngredientDemandDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// ProductionResultResponse resumen de una ejecución exitosa.
type ProductionResultResponse struct {
	ProducedLotIDs            []string              `json:"produced_lot_ids"`
	LotsCreated               int                   `json:"lots_created"`
	ConsumptionRecordsCreated int                   `json:"consumption_records_created"`
	MovementsCreated          int                   `json:"movements_created"`
	Demand                    []IngredientDemandDTO `json:"demand"`
	Warnings                  []string              `json:"warnings,omitempty"`
}

// TraceabilityEventDTO una fila de la proyección de trazabilidad.
type TraceabilityEventDTO struct {
	Type          string          `json:"type"` // PRODUCED | CONSUMED
	OccurredAt    time.Time       `json:"occurred_at"`
	ProducedLotID string          `json:"produced_lot_id,omitempty"`
	LotID         string          `json:"lot_id,omitempty"`
	IngredientID  string          `json:"ingredient_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
}
