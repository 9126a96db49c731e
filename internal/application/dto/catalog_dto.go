package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSiteRequest body para POST /api/sites.
type CreateSiteRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// SiteResponse representación de una sede.
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// IngredientResponse representación de un ingrediente.
type IngredientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SupplierResponse representación de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BOMLineRequest una línea de la lista de materiales.
type BOMLineRequest struct {
	IngredientID    string          `json:"ingredient_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Unit            string          `json:"unit"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	SiteID string           `json:"site_id"`
	Name   string           `json:"name"`
	Lines  []BOMLineRequest `json:"lines"`
}

// RecipeResponse representación de una receta con su BOM.
type RecipeResponse struct {
	ID        string           `json:"id"`
	SiteID    string           `json:"site_id"`
	Name      string           `json:"name"`
	Lines     []BOMLineRequest `json:"lines,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
