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

var _ repository.SiteRepository = (*SiteRepo)(nil)
var _ repository.IngredientRepository = (*IngredientRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SiteRepo catálogo de sedes sobre PostgreSQL.
type SiteRepo struct {
	q Querier
}

func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func (r *SiteRepo) Create(site *entity.Site) error {
	if site.ID == "" {
		site.ID = uuid.New().String()
	}
	query := `INSERT INTO sites (id, name, address, created_at) VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, site.ID, site.Name, site.Address)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create site: %w", err)
	}
	return nil
}

func (r *SiteRepo) GetByID(id string) (*entity.Site, error) {
	query := `SELECT id, name, address, created_at FROM sites WHERE id = $1`
	var s entity.Site
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Name, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

func (r *SiteRepo) List() ([]*entity.Site, error) {
	query := `SELECT id, name, address, created_at FROM sites ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var out []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	return out, nil
}

// IngredientRepo catálogo de ingredientes sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	query := `INSERT INTO ingredients (id, name, unit, created_at) VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, ingredient.ID, ingredient.Name, ingredient.Unit)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT id, name, unit, created_at FROM ingredients WHERE id = $1`
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, id).Scan(&i.ID, &i.Name, &i.Unit, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	query := `SELECT id, name, unit, created_at FROM ingredients ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return out, nil
}

// SupplierRepo catálogo de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	query := `INSERT INTO suppliers (id, name, email, created_at) VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, supplier.ID, supplier.Name, supplier.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT id, name, email, created_at FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	query := `SELECT id, name, email, created_at FROM suppliers ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return out, nil
}
