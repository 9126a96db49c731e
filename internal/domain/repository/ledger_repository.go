package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain/entity"
)

// LedgerRepository es el puerto del libro de movimientos de stock.
// Es el ÚNICO escritor de movimientos y del saldo cacheado de los lotes:
// Append inserta el movimiento y actualiza Lot.RemainingQuantity en la misma
// unidad atómica. Los movimientos nunca se modifican ni se borran.
type LedgerRepository interface {
	// Append valida y persiste un movimiento. Devuelve el id generado.
	// Falla con InvalidQuantityError si el movimiento dejaría el saldo del
	// lote en negativo, si la cantidad es cero o si el signo no corresponde
	// al tipo.
	Append(movement *entity.StockMovement) (string, error)

	// RemainingQuantity devuelve el saldo cacheado del lote, reflejando todos
	// los movimientos ya confirmados.
	RemainingQuantity(lotID string) (decimal.Decimal, error)

	// Recompute recalcula el saldo del lote sumando sus movimientos y
	// reescribe el cache. Pensado para auditorías y tests de conservación.
	Recompute(lotID string) (decimal.Decimal, error)

	// ListByLot devuelve los movimientos de un lote en orden de ocurrencia.
	ListByLot(lotID string) ([]*entity.StockMovement, error)

	// ListBySite devuelve los movimientos de una sede en un rango de fechas.
	ListBySite(siteID string, from, to time.Time) ([]*entity.StockMovement, error)
}
