package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// RegisterMovementUseCase registra pérdidas (LOSS) y ajustes (ADJUSTMENT)
// sobre un lote existente, de forma transaccional y con bloqueo de fila.
// Las correcciones nunca modifican movimientos previos: siempre son
// entradas nuevas del ledger.
type RegisterMovementUseCase struct {
	txRunner StockTxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner StockTxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// RegisterLoss registra una merma: movimiento LOSS negativo sobre el lote.
// Falla con InvalidQuantityError si dejaría el saldo en negativo.
func (uc *RegisterMovementUseCase) RegisterLoss(ctx context.Context, siteID, lotID string, quantity decimal.Decimal, reason string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidQuantityError{Reason: "la cantidad de la pérdida debe ser > 0"}
	}
	return uc.append(ctx, siteID, lotID, entity.MovementTypeLOSS, quantity.Neg(), reason)
}

// RegisterAdjustment registra un ajuste de auditoría con cantidad firmada
// (positiva o negativa, nunca cero).
func (uc *RegisterMovementUseCase) RegisterAdjustment(ctx context.Context, siteID, lotID string, signedQuantity decimal.Decimal, reason string) error {
	if signedQuantity.IsZero() {
		return &domain.InvalidQuantityError{Reason: "el ajuste no puede ser cero"}
	}
	return uc.append(ctx, siteID, lotID, entity.MovementTypeADJUSTMENT, signedQuantity, reason)
}

func (uc *RegisterMovementUseCase) append(ctx context.Context, siteID, lotID, movType string, signedQuantity decimal.Decimal, reason string) error {
	if siteID == "" || lotID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunStock(ctx, func(
		lotRepo repository.LotRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		// Bloquea la fila del lote: el guard de saldo no negativo del Append
		// se evalúa con acceso exclusivo.
		lot, err := lotRepo.GetForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.SiteID != siteID {
			return domain.ErrInvalidInput
		}
		_, err = ledgerRepo.Append(&entity.StockMovement{
			SiteID:       siteID,
			IngredientID: lot.IngredientID,
			LotID:        lotID,
			Type:         movType,
			Quantity:     signedQuantity,
			Unit:         lot.Unit,
			Reference:    reason,
			OccurredAt:   time.Now().UTC(),
		})
		return err
	})
}
