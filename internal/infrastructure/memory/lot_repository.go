package memory

import (
	"sort"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/inventory"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo registro de lotes en memoria.
type LotRepo struct {
	store *Store
}

// NewLotRepository construye el adaptador sobre el store.
func NewLotRepository(store *Store) *LotRepo {
	return &LotRepo{store: store}
}

// Create registra un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.lots[lot.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *lot
	r.store.lots[lot.ID] = &copied
	return nil
}

// GetByID devuelve una copia del lote, o nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, nil
	}
	copied := *lot
	return &copied, nil
}

// GetForUpdate en memoria no hay bloqueo de fila: la exclusión la da el
// TxRunner. Equivale a GetByID.
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	return r.GetByID(id)
}

// ListAllocatable lotes con saldo > 0 de un ingrediente en una sede,
// en orden FEFO.
func (r *LotRepo) ListAllocatable(siteID, ingredientID string) ([]entity.Lot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Lot
	for _, lot := range r.store.lots {
		if lot.SiteID == siteID && lot.IngredientID == ingredientID && lot.Allocatable() {
			out = append(out, *lot)
		}
	}
	inventory.SortFEFO(out)
	return out, nil
}

// ListAllocatableForUpdate igual que ListAllocatable: la exclusión por lote
// la garantiza el TxRunner.
func (r *LotRepo) ListAllocatableForUpdate(siteID, ingredientID string) ([]entity.Lot, error) {
	return r.ListAllocatable(siteID, ingredientID)
}

// ListBySite lista los lotes de una sede con paginación, orden estable por id.
// Con ingredientID no vacío filtra por ingrediente.
func (r *LotRepo) ListBySite(siteID, ingredientID string, limit, offset int) ([]entity.Lot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []entity.Lot
	for _, lot := range r.store.lots {
		if lot.SiteID == siteID && (ingredientID == "" || lot.IngredientID == ingredientID) {
			all = append(all, *lot)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
