package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProducedLot es el ancla de trazabilidad de una tanda de producción:
// una receta producida en una sede en una fecha, con su cantidad.
// Se crea exactamente una vez por línea de petición ejecutada con éxito.
type ProducedLot struct {
	ID               string
	SiteID           string
	RecipeID         string
	QuantityProduced decimal.Decimal
	Unit             string
	ProducedAt       time.Time
	CreatedAt        time.Time
}

// ConsumptionRecord enlaza un ProducedLot con un Lot consumido y la cantidad
// exacta tomada de él (relación N:M). Es el rastro de auditoría "qué lotes
// se gastaron para producir qué".
type ConsumptionRecord struct {
	ID            string
	ProducedLotID string
	ConsumedLotID string
	IngredientID  string
	MovementID    string          // movimiento CONSUMPTION asociado
	Quantity      decimal.Decimal // siempre positiva
	Unit          string
	CreatedAt     time.Time
}
