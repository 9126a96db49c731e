package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, site_id, ingredient_id, supplier_id, lot_code, unit, expiry_date, received_at, remaining_quantity, created_at, updated_at`

// Create inserta el lote. El saldo inicial es cero: lo fija el Append del
// movimiento RECEIPT dentro de la misma transacción.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, site_id, ingredient_id, supplier_id, lot_code, unit, expiry_date, received_at, remaining_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	supplierID := nullable(lot.SupplierID)
	lotCode := nullable(lot.LotCode)
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.SiteID, lot.IngredientID, supplierID, lotCode,
		lot.Unit, lot.ExpiryDate, lot.ReceivedAt, lot.RemainingQuantity,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene el lote, o nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	return r.get(id, true)
}

func (r *LotRepo) get(id string, forUpdate bool) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// ListAllocatable lotes con saldo > 0 en orden FEFO: caducidad ascendente
// con NULLS LAST (sin caducidad = se consume al final), desempate por
// recepción e id.
func (r *LotRepo) ListAllocatable(siteID, ingredientID string) ([]entity.Lot, error) {
	return r.listAllocatable(siteID, ingredientID, false)
}

// ListAllocatableForUpdate igual que ListAllocatable bloqueando las filas.
func (r *LotRepo) ListAllocatableForUpdate(siteID, ingredientID string) ([]entity.Lot, error) {
	return r.listAllocatable(siteID, ingredientID, true)
}

func (r *LotRepo) listAllocatable(siteID, ingredientID string, forUpdate bool) ([]entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE site_id = $1 AND ingredient_id = $2 AND remaining_quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, received_at ASC, id ASC`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, siteID, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list allocatable lots: %w", err)
	}
	defer rows.Close()
	return collectLots(rows)
}

// ListBySite lista los lotes de una sede (incluye saldo cero), paginado.
// Con ingredientID no vacío filtra por ingrediente.
func (r *LotRepo) ListBySite(siteID, ingredientID string, limit, offset int) ([]entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE site_id = $1
		  AND ($2 = '' OR ingredient_id = $2)
		ORDER BY received_at DESC, id ASC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, siteID, ingredientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots by site: %w", err)
	}
	defer rows.Close()
	return collectLots(rows)
}

func collectLots(rows pgx.Rows) ([]entity.Lot, error) {
	var out []entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		out = append(out, *lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lots: %w", err)
	}
	return out, nil
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	var supplierID, lotCode *string
	err := row.Scan(
		&l.ID, &l.SiteID, &l.IngredientID, &supplierID, &lotCode,
		&l.Unit, &l.ExpiryDate, &l.ReceivedAt, &l.RemainingQuantity,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		l.SupplierID = *supplierID
	}
	if lotCode != nil {
		l.LotCode = *lotCode
	}
	return &l, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
