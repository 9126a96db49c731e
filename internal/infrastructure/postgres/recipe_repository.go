package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas y sus líneas de insumos sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID obtiene una receta por id, o nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT id, site_id, name, created_at, updated_at FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.SiteID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// GetBOM devuelve las líneas de insumos de la receta.
// Receta inexistente es error; receta sin líneas devuelve slice vacío.
func (r *RecipeRepo) GetBOM(recipeID string) ([]entity.BOMLine, error) {
	rec, err := r.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &domain.RecipeNotFoundError{RecipeID: recipeID}
	}
	query := `
		SELECT recipe_id, ingredient_id, quantity_per_unit, unit
		FROM recipe_lines
		WHERE recipe_id = $1
		ORDER BY ingredient_id ASC`
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()

	lines := []entity.BOMLine{}
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.RecipeID, &l.IngredientID, &l.QuantityPerUnit, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe lines: %w", err)
	}
	return lines, nil
}

// Create persiste la receta y sus líneas.
func (r *RecipeRepo) Create(recipe *entity.Recipe, lines []entity.BOMLine) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipes (id, site_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(context.Background(), query, recipe.ID, recipe.SiteID, recipe.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	for i := range lines {
		l := &lines[i]
		l.RecipeID = recipe.ID
		lineQuery := `
			INSERT INTO recipe_lines (recipe_id, ingredient_id, quantity_per_unit, unit)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(context.Background(), lineQuery, l.RecipeID, l.IngredientID, l.QuantityPerUnit, l.Unit); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("create recipe line: %w", err)
		}
	}
	return nil
}

// ListBySite recetas de una sede, ordenadas por nombre.
func (r *RecipeRepo) ListBySite(siteID string) ([]*entity.Recipe, error) {
	query := `
		SELECT id, site_id, name, created_at, updated_at
		FROM recipes WHERE site_id = $1
		ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, siteID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.SiteID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}
