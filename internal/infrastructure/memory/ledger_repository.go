package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos en memoria. Único escritor del saldo
// cacheado de los lotes, igual que la implementación PostgreSQL.
type LedgerRepo struct {
	store *Store
}

// NewLedgerRepository construye el adaptador sobre el store.
func NewLedgerRepository(store *Store) *LedgerRepo {
	return &LedgerRepo{store: store}
}

// Append valida el movimiento, lo añade al libro y actualiza el saldo del
// lote en la misma sección crítica.
func (r *LedgerRepo) Append(movement *entity.StockMovement) (string, error) {
	if !entity.ValidMovementType(movement.Type) {
		return "", domain.ErrInvalidInput
	}
	if movement.Quantity.IsZero() {
		return "", &domain.InvalidQuantityError{Reason: "el movimiento no puede ser de cantidad cero"}
	}
	if !movement.SignValid() {
		return "", &domain.InvalidQuantityError{Reason: "signo incoherente con el tipo de movimiento " + movement.Type}
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lot, ok := r.store.lots[movement.LotID]
	if !ok {
		return "", domain.ErrNotFound
	}
	newRemaining := lot.RemainingQuantity.Add(movement.Quantity)
	if newRemaining.LessThan(decimal.Zero) {
		return "", &domain.InvalidQuantityError{
			Reason: "el movimiento dejaría el lote " + movement.LotID + " en negativo",
		}
	}

	copied := *movement
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	if copied.OccurredAt.IsZero() {
		copied.OccurredAt = time.Now().UTC()
	}
	copied.CreatedAt = time.Now().UTC()

	r.store.movements = append(r.store.movements, &copied)
	lot.RemainingQuantity = newRemaining
	lot.UpdatedAt = copied.CreatedAt
	return copied.ID, nil
}

// RemainingQuantity saldo cacheado del lote.
func (r *LedgerRepo) RemainingQuantity(lotID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	lot, ok := r.store.lots[lotID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return lot.RemainingQuantity, nil
}

// Recompute suma los movimientos del lote y reescribe el cache.
func (r *LedgerRepo) Recompute(lotID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	lot, ok := r.store.lots[lotID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	sum := decimal.Zero
	for _, m := range r.store.movements {
		if m.LotID == lotID {
			sum = sum.Add(m.Quantity)
		}
	}
	lot.RemainingQuantity = sum
	lot.UpdatedAt = time.Now().UTC()
	return sum, nil
}

// ListByLot movimientos de un lote en orden de ocurrencia.
func (r *LedgerRepo) ListByLot(lotID string) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.LotID == lotID {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

// ListBySite movimientos de una sede en un rango de fechas.
func (r *LedgerRepo) ListBySite(siteID string, from, to time.Time) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.SiteID != siteID {
			continue
		}
		if m.OccurredAt.Before(from) || m.OccurredAt.After(to) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
