package repository

import "github.com/jhoicas/cocina-stock/internal/domain/entity"

// SiteRepository catálogo de sedes.
type SiteRepository interface {
	Create(site *entity.Site) error
	GetByID(id string) (*entity.Site, error)
	List() ([]*entity.Site, error)
}

// IngredientRepository catálogo de ingredientes.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	List() ([]*entity.Ingredient, error)
}

// SupplierRepository catálogo de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
}
