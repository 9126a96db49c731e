package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// AuditUseCase operaciones de auditoría del ledger: reconciliación del saldo
// cacheado contra la suma de movimientos, y lectura del historial de un lote.
// El ledger es el registro durable; el cache de los lotes siempre debe poder
// reconstruirse reproduciendo los movimientos.
type AuditUseCase struct {
	ledgerRepo repository.LedgerRepository
	lotRepo    repository.LotRepository
}

// NewAuditUseCase construye el caso de uso (repositorios sin transacción,
// atados al pool).
func NewAuditUseCase(ledgerRepo repository.LedgerRepository, lotRepo repository.LotRepository) *AuditUseCase {
	return &AuditUseCase{ledgerRepo: ledgerRepo, lotRepo: lotRepo}
}

// ReconcileLot recalcula el saldo del lote desde sus movimientos y reescribe
// el cache. Devuelve el saldo recalculado.
func (uc *AuditUseCase) ReconcileLot(lotID string) (decimal.Decimal, error) {
	return uc.ledgerRepo.Recompute(lotID)
}

// LotMovements devuelve el historial de movimientos de un lote en orden de
// ocurrencia.
func (uc *AuditUseCase) LotMovements(lotID string) ([]*entity.StockMovement, error) {
	return uc.ledgerRepo.ListByLot(lotID)
}

// LotsBySite lista los lotes de una sede (incluye saldo cero, para auditoría).
// ingredientID vacío lista todos los ingredientes.
func (uc *AuditUseCase) LotsBySite(siteID, ingredientID string, limit, offset int) ([]entity.Lot, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.lotRepo.ListBySite(siteID, ingredientID, limit, offset)
}
