package memory

import (
	"sort"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)
var _ repository.IngredientRepository = (*IngredientRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SiteRepo catálogo de sedes en memoria.
type SiteRepo struct {
	store *Store
}

// NewSiteRepository construye el adaptador sobre el store.
func NewSiteRepository(store *Store) *SiteRepo {
	return &SiteRepo{store: store}
}

func (r *SiteRepo) Create(site *entity.Site) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sites[site.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *site
	r.store.sites[site.ID] = &copied
	return nil
}

func (r *SiteRepo) GetByID(id string) (*entity.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	site, ok := r.store.sites[id]
	if !ok {
		return nil, nil
	}
	copied := *site
	return &copied, nil
}

func (r *SiteRepo) List() ([]*entity.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Site, 0, len(r.store.sites))
	for _, s := range r.store.sites {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// IngredientRepo catálogo de ingredientes en memoria.
type IngredientRepo struct {
	store *Store
}

// NewIngredientRepository construye el adaptador sobre el store.
func NewIngredientRepository(store *Store) *IngredientRepo {
	return &IngredientRepo{store: store}
}

func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.ingredients[ingredient.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *ingredient
	r.store.ingredients[ingredient.ID] = &copied
	return nil
}

func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ing, ok := r.store.ingredients[id]
	if !ok {
		return nil, nil
	}
	copied := *ing
	return &copied, nil
}

func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Ingredient, 0, len(r.store.ingredients))
	for _, i := range r.store.ingredients {
		copied := *i
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SupplierRepo catálogo de proveedores en memoria.
type SupplierRepo struct {
	store *Store
}

// NewSupplierRepository construye el adaptador sobre el store.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *supplier
	r.store.suppliers[supplier.ID] = &copied
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sup, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	copied := *sup
	return &copied, nil
}

func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
