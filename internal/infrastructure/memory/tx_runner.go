package memory

import (
	"context"

	appinventory "github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/application/production"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner and inventory.StockTxRunner.
var _ production.TxRunner = (*TxRunner)(nil)
var _ appinventory.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con semántica transaccional sobre el Store:
// exclusión total entre transacciones (equivalente a serializable) y
// aislamiento frente a lectores, corriendo el callback sobre una copia
// sombra que solo se publica al confirmar. Si el callback falla la sombra
// se descarta y el store vivo queda intacto. Si el contexto caduca antes
// de obtener el turno, devuelve ConcurrencyConflictError, igual que la
// implementación PostgreSQL ante contención.
type TxRunner struct {
	store *Store
	sem   chan struct{}
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store, sem: make(chan struct{}, 1)}
}

func (r *TxRunner) acquire(ctx context.Context) error {
	select {
	case r.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return &domain.ConcurrencyConflictError{Cause: ctx.Err()}
	}
}

func (r *TxRunner) release() { <-r.sem }

// Run inicia una "transacción" de producción: toma el turno, copia el estado
// a una sombra, ejecuta fn con repos atados a la sombra y publica la sombra
// solo si fn termina bien. Mientras la transacción corre, los repos atados
// al store vivo siguen sirviendo el último estado confirmado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	ledgerRepo repository.LedgerRepository,
	producedRepo repository.ProducedLotRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) error) error {
	if err := r.acquire(ctx); err != nil {
		return err
	}
	defer r.release()

	shadow := r.store.beginShadow()
	err := fn(
		NewLotRepository(shadow),
		NewLedgerRepository(shadow),
		NewProducedLotRepository(shadow),
		NewConsumptionRecordRepository(shadow),
	)
	if err != nil {
		return err
	}
	r.store.commitShadow(shadow)
	return nil
}

// RunStock igual que Run pero con el juego de repos de la ruta simple
// (recepción, pérdidas, ajustes).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	if err := r.acquire(ctx); err != nil {
		return err
	}
	defer r.release()

	shadow := r.store.beginShadow()
	err := fn(NewLotRepository(shadow), NewLedgerRepository(shadow))
	if err != nil {
		return err
	}
	r.store.commitShadow(shadow)
	return nil
}
