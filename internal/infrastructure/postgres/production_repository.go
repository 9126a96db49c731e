package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.ProducedLotRepository = (*ProducedLotRepo)(nil)
var _ repository.ConsumptionRecordRepository = (*ConsumptionRecordRepo)(nil)

// ProducedLotRepo tandas de producción sobre PostgreSQL (usable con pool o tx).
type ProducedLotRepo struct {
	q Querier
}

// NewProducedLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProducedLotRepository(q Querier) *ProducedLotRepo {
	return &ProducedLotRepo{q: q}
}

// Create persiste una tanda de producción.
func (r *ProducedLotRepo) Create(lot *entity.ProducedLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO produced_lots (id, site_id, recipe_id, quantity_produced, unit, produced_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.SiteID, lot.RecipeID, lot.QuantityProduced, lot.Unit, lot.ProducedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create produced lot: %w", err)
	}
	return nil
}

// GetByID obtiene una tanda por id, o nil si no existe.
func (r *ProducedLotRepo) GetByID(id string) (*entity.ProducedLot, error) {
	query := `
		SELECT id, site_id, recipe_id, quantity_produced, unit, produced_at, created_at
		FROM produced_lots WHERE id = $1`
	var p entity.ProducedLot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SiteID, &p.RecipeID, &p.QuantityProduced, &p.Unit, &p.ProducedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produced lot: %w", err)
	}
	return &p, nil
}

// ListBySiteAndDate tandas producidas en la sede el día `date`.
func (r *ProducedLotRepo) ListBySiteAndDate(siteID string, date time.Time) ([]*entity.ProducedLot, error) {
	query := `
		SELECT id, site_id, recipe_id, quantity_produced, unit, produced_at, created_at
		FROM produced_lots
		WHERE site_id = $1 AND produced_at >= $2 AND produced_at < $3
		ORDER BY produced_at ASC, id ASC`
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	rows, err := r.q.Query(context.Background(), query, siteID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list produced lots: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProducedLot
	for rows.Next() {
		var p entity.ProducedLot
		if err := rows.Scan(&p.ID, &p.SiteID, &p.RecipeID, &p.QuantityProduced, &p.Unit, &p.ProducedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan produced lot: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate produced lots: %w", err)
	}
	return out, nil
}

// ConsumptionRecordRepo enlaces producción → lotes consumidos sobre PostgreSQL.
type ConsumptionRecordRepo struct {
	q Querier
}

// NewConsumptionRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRecordRepository(q Querier) *ConsumptionRecordRepo {
	return &ConsumptionRecordRepo{q: q}
}

// Create persiste un enlace de consumo.
func (r *ConsumptionRecordRepo) Create(record *entity.ConsumptionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_records (id, produced_lot_id, consumed_lot_id, ingredient_id, movement_id, quantity, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProducedLotID, record.ConsumedLotID, record.IngredientID,
		record.MovementID, record.Quantity, record.Unit,
	)
	if err != nil {
		return fmt.Errorf("create consumption record: %w", err)
	}
	return nil
}

// ListByProducedLot enlaces de una tanda.
func (r *ConsumptionRecordRepo) ListByProducedLot(producedLotID string) ([]*entity.ConsumptionRecord, error) {
	query := `
		SELECT id, produced_lot_id, consumed_lot_id, ingredient_id, movement_id, quantity, unit, created_at
		FROM consumption_records
		WHERE produced_lot_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, producedLotID)
	if err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	defer rows.Close()

	var out []*entity.ConsumptionRecord
	for rows.Next() {
		var c entity.ConsumptionRecord
		if err := rows.Scan(&c.ID, &c.ProducedLotID, &c.ConsumedLotID, &c.IngredientID, &c.MovementID, &c.Quantity, &c.Unit, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumption records: %w", err)
	}
	return out, nil
}
