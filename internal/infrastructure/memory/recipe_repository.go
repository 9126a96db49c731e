package memory

import (
	"sort"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo catálogo de recetas/BOM en memoria.
type RecipeRepo struct {
	store *Store
}

// NewRecipeRepository construye el adaptador sobre el store.
func NewRecipeRepository(store *Store) *RecipeRepo {
	return &RecipeRepo{store: store}
}

func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	recipe, ok := r.store.recipes[id]
	if !ok {
		return nil, nil
	}
	copied := *recipe
	return &copied, nil
}

// GetBOM devuelve las líneas de la receta; RecipeNotFoundError si no existe.
func (r *RecipeRepo) GetBOM(recipeID string) ([]entity.BOMLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipes[recipeID]; !ok {
		return nil, &domain.RecipeNotFoundError{RecipeID: recipeID}
	}
	lines := r.store.bomLines[recipeID]
	out := make([]entity.BOMLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *RecipeRepo) Create(recipe *entity.Recipe, lines []entity.BOMLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipes[recipe.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *recipe
	r.store.recipes[recipe.ID] = &copied
	bom := make([]entity.BOMLine, len(lines))
	copy(bom, lines)
	r.store.bomLines[recipe.ID] = bom
	return nil
}

func (r *RecipeRepo) ListBySite(siteID string) ([]*entity.Recipe, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Recipe
	for _, rec := range r.store.recipes {
		if rec.SiteID == siteID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
