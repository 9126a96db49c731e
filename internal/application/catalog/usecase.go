package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/application/dto"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// UseCase mantenimiento del catálogo: sedes, ingredientes, proveedores y
// recetas con su BOM. El motor de producción solo LEE este catálogo a través
// de los puertos de repositorio; aquí vive la escritura.
type UseCase struct {
	siteRepo       repository.SiteRepository
	ingredientRepo repository.IngredientRepository
	supplierRepo   repository.SupplierRepository
	recipeRepo     repository.RecipeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	siteRepo repository.SiteRepository,
	ingredientRepo repository.IngredientRepository,
	supplierRepo repository.SupplierRepository,
	recipeRepo repository.RecipeRepository,
) *UseCase {
	return &UseCase{
		siteRepo:       siteRepo,
		ingredientRepo: ingredientRepo,
		supplierRepo:   supplierRepo,
		recipeRepo:     recipeRepo,
	}
}

// CreateSite crea una sede.
func (uc *UseCase) CreateSite(in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	site := &entity.Site{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.siteRepo.Create(site); err != nil {
		return nil, err
	}
	return &dto.SiteResponse{ID: site.ID, Name: site.Name, Address: site.Address, CreatedAt: site.CreatedAt}, nil
}

// ListSites lista las sedes.
func (uc *UseCase) ListSites() ([]dto.SiteResponse, error) {
	sites, err := uc.siteRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.SiteResponse{ID: s.ID, Name: s.Name, Address: s.Address, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

// CreateIngredient crea un ingrediente.
func (uc *UseCase) CreateIngredient(in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	ing := &entity.Ingredient{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.ingredientRepo.Create(ing); err != nil {
		return nil, err
	}
	return &dto.IngredientResponse{ID: ing.ID, Name: ing.Name, Unit: ing.Unit, CreatedAt: ing.CreatedAt}, nil
}

// ListIngredients lista el catálogo de ingredientes.
func (uc *UseCase) ListIngredients() ([]dto.IngredientResponse, error) {
	items, err := uc.ingredientRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.IngredientResponse{ID: i.ID, Name: i.Name, Unit: i.Unit, CreatedAt: i.CreatedAt})
	}
	return out, nil
}

// CreateSupplier crea un proveedor.
func (uc *UseCase) CreateSupplier(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	sup := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.supplierRepo.Create(sup); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{ID: sup.ID, Name: sup.Name, Email: sup.Email, CreatedAt: sup.CreatedAt}, nil
}

// ListSuppliers lista los proveedores.
func (uc *UseCase) ListSuppliers() ([]dto.SupplierResponse, error) {
	items, err := uc.supplierRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SupplierResponse{ID: s.ID, Name: s.Name, Email: s.Email, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

// CreateRecipe crea una receta con sus líneas de BOM. Las líneas con
// cantidad no positiva se rechazan aquí (el motor las ignoraría con warning,
// pero el catálogo no debe aceptarlas).
func (uc *UseCase) CreateRecipe(in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.SiteID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	site, err := uc.siteRepo.GetByID(in.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	recipe := &entity.Recipe{
		ID:        uuid.New().String(),
		SiteID:    in.SiteID,
		Name:      in.Name,
		CreatedAt: time.Now().UTC(),
	}
	lines := make([]entity.BOMLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.IngredientID == "" || l.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		if l.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
			return nil, &domain.InvalidQuantityError{Reason: "las líneas de BOM deben tener cantidad > 0"}
		}
		ing, err := uc.ingredientRepo.GetByID(l.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.BOMLine{
			RecipeID:        recipe.ID,
			IngredientID:    l.IngredientID,
			QuantityPerUnit: l.QuantityPerUnit,
			Unit:            l.Unit,
		})
	}
	if err := uc.recipeRepo.Create(recipe, lines); err != nil {
		return nil, err
	}
	return &dto.RecipeResponse{ID: recipe.ID, SiteID: recipe.SiteID, Name: recipe.Name, Lines: in.Lines, CreatedAt: recipe.CreatedAt}, nil
}

// ListRecipes lista las recetas de una sede.
func (uc *UseCase) ListRecipes(siteID string) ([]dto.RecipeResponse, error) {
	if siteID == "" {
		return nil, domain.ErrInvalidInput
	}
	recipes, err := uc.recipeRepo.ListBySite(siteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, dto.RecipeResponse{ID: r.ID, SiteID: r.SiteID, Name: r.Name, CreatedAt: r.CreatedAt})
	}
	return out, nil
}
