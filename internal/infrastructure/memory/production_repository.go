package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.ProducedLotRepository = (*ProducedLotRepo)(nil)
var _ repository.ConsumptionRecordRepository = (*ConsumptionRecordRepo)(nil)

// ProducedLotRepo tandas de producción en memoria.
type ProducedLotRepo struct {
	store *Store
}

// NewProducedLotRepository construye el adaptador sobre el store.
func NewProducedLotRepository(store *Store) *ProducedLotRepo {
	return &ProducedLotRepo{store: store}
}

// Create registra una tanda de producción.
func (r *ProducedLotRepo) Create(lot *entity.ProducedLot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *lot
	if copied.ID == "" {
		copied.ID = uuid.New().String()
		lot.ID = copied.ID
	}
	if _, ok := r.store.producedLots[copied.ID]; ok {
		return domain.ErrDuplicate
	}
	copied.CreatedAt = time.Now().UTC()
	r.store.producedLots[copied.ID] = &copied
	return nil
}

// GetByID devuelve la tanda, o nil si no existe.
func (r *ProducedLotRepo) GetByID(id string) (*entity.ProducedLot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	lot, ok := r.store.producedLots[id]
	if !ok {
		return nil, nil
	}
	copied := *lot
	return &copied, nil
}

// ListBySiteAndDate tandas producidas en la sede el día indicado (UTC).
func (r *ProducedLotRepo) ListBySiteAndDate(siteID string, date time.Time) ([]*entity.ProducedLot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	y, m, d := date.UTC().Date()
	var out []*entity.ProducedLot
	for _, lot := range r.store.producedLots {
		ly, lm, ld := lot.ProducedAt.UTC().Date()
		if lot.SiteID == siteID && ly == y && lm == m && ld == d {
			copied := *lot
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ProducedAt.Equal(out[j].ProducedAt) {
			return out[i].ProducedAt.Before(out[j].ProducedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ConsumptionRecordRepo enlaces producción → lotes consumidos en memoria.
type ConsumptionRecordRepo struct {
	store *Store
}

// NewConsumptionRecordRepository construye el adaptador sobre el store.
func NewConsumptionRecordRepository(store *Store) *ConsumptionRecordRepo {
	return &ConsumptionRecordRepo{store: store}
}

// Create registra un enlace de consumo.
func (r *ConsumptionRecordRepo) Create(record *entity.ConsumptionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *record
	if copied.ID == "" {
		copied.ID = uuid.New().String()
		record.ID = copied.ID
	}
	copied.CreatedAt = time.Now().UTC()
	r.store.consumptions = append(r.store.consumptions, &copied)
	return nil
}

// ListByProducedLot enlaces de una tanda, en orden de inserción.
func (r *ConsumptionRecordRepo) ListByProducedLot(producedLotID string) ([]*entity.ConsumptionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ConsumptionRecord
	for _, rec := range r.store.consumptions {
		if rec.ProducedLotID == producedLotID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}
