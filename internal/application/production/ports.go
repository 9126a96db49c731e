package production

import (
	"context"

	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con aislamiento
// serializable, pasando repositorios atados a esa tx. Es la frontera de
// atomicidad del motor: asignación y commit ocurren dentro de UNA Run, de
// modo que la producción se aplica completa o no deja rastro.
//
// La contención de bloqueo/aislamiento se devuelve como
// ConcurrencyConflictError; como nada se escribió, reintentar la petición
// completa es seguro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		ledgerRepo repository.LedgerRepository,
		producedRepo repository.ProducedLotRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error) error
}
