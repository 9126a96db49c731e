package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// TraceabilityEvent es una fila de la proyección de trazabilidad:
// qué pasó con una receta en una sede un día dado (tandas producidas y
// consumos asociados), ordenado por ocurrencia.
type TraceabilityEvent struct {
	Type          string // PRODUCED | CONSUMED
	OccurredAt    time.Time
	ProducedLotID string
	LotID         string // lote consumido (vacío en eventos PRODUCED)
	IngredientID  string
	Quantity      decimal.Decimal
	Unit          string
}

// TraceabilityRepository es el puerto de solo lectura que une ProducedLot,
// ConsumptionRecord y StockMovement para las pantallas de operación.
type TraceabilityRepository interface {
	Events(siteID string, date time.Time, recipeID string) ([]TraceabilityEvent, error)
}
