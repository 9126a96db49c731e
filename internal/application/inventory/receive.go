package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// ReceiveUseCase registra la recepción de mercancía: crea el lote físico y
// su movimiento RECEIPT en una sola transacción. Comparte ledger y registro
// de lotes con el motor de producción pero no tiene paso de asignación.
type ReceiveUseCase struct {
	txRunner       StockTxRunner
	siteRepo       repository.SiteRepository
	ingredientRepo repository.IngredientRepository
	supplierRepo   repository.SupplierRepository
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(
	txRunner StockTxRunner,
	siteRepo repository.SiteRepository,
	ingredientRepo repository.IngredientRepository,
	supplierRepo repository.SupplierRepository,
) *ReceiveUseCase {
	return &ReceiveUseCase{
		txRunner:       txRunner,
		siteRepo:       siteRepo,
		ingredientRepo: ingredientRepo,
		supplierRepo:   supplierRepo,
	}
}

// ReceiveInput entrada para registrar una recepción.
type ReceiveInput struct {
	SiteID       string
	IngredientID string
	SupplierID   string // opcional
	LotCode      string // opcional, código del proveedor
	Quantity     decimal.Decimal
	Unit         string
	ExpiryDate   *time.Time // nil = no caduca (se consume al final en FEFO)
}

// Receive valida la entrada, crea el lote y registra el movimiento RECEIPT.
// Devuelve el id del lote creado.
func (uc *ReceiveUseCase) Receive(ctx context.Context, in ReceiveInput) (string, error) {
	if in.SiteID == "" || in.IngredientID == "" || in.Unit == "" {
		return "", domain.ErrInvalidInput
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return "", &domain.InvalidQuantityError{Reason: "la cantidad recibida debe ser > 0"}
	}

	site, err := uc.siteRepo.GetByID(in.SiteID)
	if err != nil {
		return "", err
	}
	ingredient, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return "", err
	}
	if site == nil || ingredient == nil {
		return "", domain.ErrNotFound
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return "", err
		}
		if supplier == nil {
			return "", domain.ErrNotFound
		}
	}

	now := time.Now().UTC()
	lotID := uuid.New().String()

	err = uc.txRunner.RunStock(ctx, func(
		lotRepo repository.LotRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		lot := &entity.Lot{
			ID:                lotID,
			SiteID:            in.SiteID,
			IngredientID:      in.IngredientID,
			SupplierID:        in.SupplierID,
			LotCode:           in.LotCode,
			Unit:              in.Unit,
			ExpiryDate:        in.ExpiryDate,
			ReceivedAt:        now,
			RemainingQuantity: decimal.Zero, // lo fija el Append del RECEIPT
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		_, err := ledgerRepo.Append(&entity.StockMovement{
			SiteID:       in.SiteID,
			IngredientID: in.IngredientID,
			LotID:        lotID,
			Type:         entity.MovementTypeRECEIPT,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Reference:    in.LotCode,
			OccurredAt:   now,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return lotID, nil
}
