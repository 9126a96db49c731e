package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.TraceabilityRepository = (*TraceabilityRepo)(nil)

// TraceabilityRepo proyección de solo lectura que une tandas producidas,
// consumos y movimientos para reconstruir el día de una receta en una sede.
type TraceabilityRepo struct {
	q Querier
}

func NewTraceabilityRepository(q Querier) *TraceabilityRepo {
	return &TraceabilityRepo{q: q}
}

// Events eventos PRODUCED y CONSUMED de la receta en la sede el día `date`,
// ordenados por ocurrencia.
func (r *TraceabilityRepo) Events(siteID string, date time.Time, recipeID string) ([]repository.TraceabilityEvent, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT 'PRODUCED' AS event_type, p.produced_at AS occurred_at,
		       p.id AS produced_lot_id, '' AS lot_id, '' AS ingredient_id,
		       p.quantity_produced AS quantity, p.unit
		FROM produced_lots p
		WHERE p.site_id = $1 AND p.recipe_id = $2
		  AND p.produced_at >= $3 AND p.produced_at < $4
		UNION ALL
		SELECT 'CONSUMED' AS event_type, m.occurred_at,
		       c.produced_lot_id, c.consumed_lot_id, c.ingredient_id,
		       c.quantity, c.unit
		FROM consumption_records c
		JOIN produced_lots p ON p.id = c.produced_lot_id
		JOIN stock_movements m ON m.id = c.movement_id
		WHERE p.site_id = $1 AND p.recipe_id = $2
		  AND p.produced_at >= $3 AND p.produced_at < $4
		ORDER BY occurred_at ASC, event_type DESC, lot_id ASC`

	rows, err := r.q.Query(context.Background(), query, siteID, recipeID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list traceability events: %w", err)
	}
	defer rows.Close()

	events := []repository.TraceabilityEvent{}
	for rows.Next() {
		var e repository.TraceabilityEvent
		if err := rows.Scan(&e.Type, &e.OccurredAt, &e.ProducedLotID, &e.LotID, &e.IngredientID, &e.Quantity, &e.Unit); err != nil {
			return nil, fmt.Errorf("scan traceability event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate traceability events: %w", err)
	}
	return events, nil
}
