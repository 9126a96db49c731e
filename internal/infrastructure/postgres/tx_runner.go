package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	appinventory "github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/application/production"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner and inventory.StockTxRunner.
var _ production.TxRunner = (*TxRunner)(nil)
var _ appinventory.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Las
// transacciones de producción corren con aislamiento serializable: junto al
// SELECT ... FOR UPDATE de los lotes, garantiza que asignación y commit se
// comporten como bajo acceso exclusivo por lote. La contención (40001,
// deadlock, lock timeout) se traduce a ConcurrencyConflictError para que el
// caller reintente la petición completa.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción de producción, ejecuta fn con repos atados a la
// tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	ledgerRepo repository.LedgerRepository,
	producedRepo repository.ProducedLotRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewLotRepository(tx),
		NewLedgerRepository(tx),
		NewProducedLotRepository(tx),
		NewConsumptionRecordRepository(tx),
	)
	if err != nil {
		if isSerializationFailure(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock transacción de la ruta simple (recepción, pérdidas, ajustes):
// mismo contrato, juego de repos reducido.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLotRepository(tx), NewLedgerRepository(tx)); err != nil {
		if isSerializationFailure(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
