package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es una receta del catálogo. El motor de producción solo la lee.
type Recipe struct {
	ID        string
	SiteID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BOMLine es una línea de la lista de materiales (BOM) de una receta:
// cantidad de un ingrediente necesaria para producir UNA unidad.
type BOMLine struct {
	RecipeID        string
	IngredientID    string
	QuantityPerUnit decimal.Decimal
	Unit            string
}
