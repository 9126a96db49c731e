package repository

import "github.com/jhoicas/cocina-stock/internal/domain/entity"

// RecipeRepository es el puerto de lectura del catálogo de recetas/BOM.
// El motor de producción solo lo consume; el mantenimiento del catálogo
// vive en el módulo de catálogo.
type RecipeRepository interface {
	GetByID(id string) (*entity.Recipe, error)

	// GetBOM devuelve las líneas de materiales de la receta (ingrediente,
	// cantidad por unidad producida, unidad). Falla con RecipeNotFoundError
	// si la receta no existe. Una receta existente sin líneas devuelve un
	// slice vacío (el motor lo reporta como warning, no como error).
	GetBOM(recipeID string) ([]entity.BOMLine, error)

	Create(recipe *entity.Recipe, lines []entity.BOMLine) error
	ListBySite(siteID string) ([]*entity.Recipe, error)
}
