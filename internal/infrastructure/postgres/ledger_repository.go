package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Único escritor de stock_movements y del saldo cacheado en lots: el insert
// del movimiento y el update del lote van en la misma unidad atómica, con
// el guard de no-negatividad en el propio UPDATE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const movementColumns = `id, site_id, ingredient_id, lot_id, type, quantity, unit, reference, occurred_at, created_at`

// Append valida el movimiento, actualiza el saldo del lote con guard de
// no-negatividad y persiste la entrada del libro.
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
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.OccurredAt.IsZero() {
		movement.OccurredAt = time.Now().UTC()
	}

	ctx := context.Background()

	// El guard va en el WHERE: si dejaría el saldo negativo no se actualiza
	// ninguna fila y el movimiento se rechaza.
	update := `
		UPDATE lots
		SET remaining_quantity = remaining_quantity + $2, updated_at = now()
		WHERE id = $1 AND remaining_quantity + $2 >= 0`
	tag, err := r.q.Exec(ctx, update, movement.LotID, movement.Quantity)
	if err != nil {
		return "", fmt.Errorf("update lot balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.lotExists(ctx, movement.LotID)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", domain.ErrNotFound
		}
		return "", &domain.InvalidQuantityError{
			Reason: "el movimiento dejaría el lote " + movement.LotID + " en negativo",
		}
	}

	insert := `
		INSERT INTO stock_movements (id, site_id, ingredient_id, lot_id, type, quantity, unit, reference, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err = r.q.Exec(ctx, insert,
		movement.ID, movement.SiteID, movement.IngredientID, movement.LotID,
		movement.Type, movement.Quantity, movement.Unit, movement.Reference, movement.OccurredAt,
	)
	if err != nil {
		return "", fmt.Errorf("append stock movement: %w", err)
	}
	return movement.ID, nil
}

func (r *LedgerRepo) lotExists(ctx context.Context, lotID string) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM lots WHERE id = $1`, lotID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check lot exists: %w", err)
	}
	return true, nil
}

// RemainingQuantity saldo cacheado del lote.
func (r *LedgerRepo) RemainingQuantity(lotID string) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT remaining_quantity FROM lots WHERE id = $1`, lotID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("remaining quantity: %w", err)
	}
	return qty, nil
}

// Recompute reconstruye el saldo del lote desde sus movimientos y reescribe
// el cache (ruta de auditoría: el ledger manda, el cache obedece).
func (r *LedgerRepo) Recompute(lotID string) (decimal.Decimal, error) {
	query := `
		UPDATE lots
		SET remaining_quantity = COALESCE((
			SELECT SUM(quantity) FROM stock_movements WHERE lot_id = $1
		), 0), updated_at = now()
		WHERE id = $1
		RETURNING remaining_quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, lotID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("recompute lot balance: %w", err)
	}
	return qty, nil
}

// ListByLot movimientos de un lote en orden de ocurrencia.
func (r *LedgerRepo) ListByLot(lotID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE lot_id = $1
		ORDER BY occurred_at ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list movements by lot: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListBySite movimientos de una sede en un rango de fechas.
func (r *LedgerRepo) ListBySite(siteID string, from, to time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE site_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, siteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list movements by site: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		err := rows.Scan(
			&m.ID, &m.SiteID, &m.IngredientID, &m.LotID, &m.Type,
			&m.Quantity, &m.Unit, &m.Reference, &m.OccurredAt, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}
