package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.TraceabilityRepository = (*TraceabilityRepo)(nil)

// TraceabilityRepo proyección de trazabilidad en memoria: une tandas de
// producción, enlaces de consumo y movimientos del ledger.
type TraceabilityRepo struct {
	store *Store
}

// NewTraceabilityRepository construye el adaptador sobre el store.
func NewTraceabilityRepository(store *Store) *TraceabilityRepo {
	return &TraceabilityRepo{store: store}
}

// Events eventos de la receta en la sede para el día dado, por ocurrencia.
func (r *TraceabilityRepo) Events(siteID string, date time.Time, recipeID string) ([]repository.TraceabilityEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	y, m, d := date.UTC().Date()
	movementsByID := make(map[string]int, len(r.store.movements))
	for i, mov := range r.store.movements {
		movementsByID[mov.ID] = i
	}

	var out []repository.TraceabilityEvent
	for _, lot := range r.store.producedLots {
		ly, lm, ld := lot.ProducedAt.UTC().Date()
		if lot.SiteID != siteID || lot.RecipeID != recipeID || ly != y || lm != m || ld != d {
			continue
		}
		out = append(out, repository.TraceabilityEvent{
			Type:          "PRODUCED",
			OccurredAt:    lot.ProducedAt,
			ProducedLotID: lot.ID,
			Quantity:      lot.QuantityProduced,
			Unit:          lot.Unit,
		})
		for _, rec := range r.store.consumptions {
			if rec.ProducedLotID != lot.ID {
				continue
			}
			occurred := lot.ProducedAt
			if i, ok := movementsByID[rec.MovementID]; ok {
				occurred = r.store.movements[i].OccurredAt
			}
			out = append(out, repository.TraceabilityEvent{
				Type:          "CONSUMED",
				OccurredAt:    occurred,
				ProducedLotID: lot.ID,
				LotID:         rec.ConsumedLotID,
				IngredientID:  rec.IngredientID,
				Quantity:      rec.Quantity,
				Unit:          rec.Unit,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
