package inventory

import (
	"context"

	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD con
// repositorios de lotes y ledger atados a esa tx. Es la ruta simétrica y
// simple del motor (recepción, pérdidas, ajustes): sin paso de asignación,
// pero con la misma garantía de atomicidad movimiento + saldo cacheado.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
