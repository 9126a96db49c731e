package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cocina-stock/internal/application/dto"
	"github.com/jhoicas/cocina-stock/internal/application/inventory"
	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de recepciones, mermas, ajustes
// y consulta de lotes (protegido).
type InventoryHandler struct {
	receive   *inventory.ReceiveUseCase
	movements *inventory.RegisterMovementUseCase
	audit     *inventory.AuditUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(receive *inventory.ReceiveUseCase, movements *inventory.RegisterMovementUseCase, audit *inventory.AuditUseCase) *InventoryHandler {
	return &InventoryHandler{receive: receive, movements: movements, audit: audit}
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Crea un lote nuevo y registra el movimiento RECEIPT en el libro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "site_id, ingredient_id, quantity, unit, expiry_date opcional"
// @Success      201   {object}  dto.ReceiveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lotID, err := h.receive.Receive(c.Context(), inventory.ReceiveInput{
		SiteID:       in.SiteID,
		IngredientID: in.IngredientID,
		SupplierID:   in.SupplierID,
		LotCode:      in.LotCode,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		ExpiryDate:   in.ExpiryDate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveResponse{LotID: lotID})
}

// RegisterLoss godoc
// @Summary      Registrar merma
// @Description  Registra un movimiento LOSS sobre un lote (la cantidad se envía positiva).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LossRequest  true  "site_id, lot_id, quantity > 0, reason opcional"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/losses [post]
func (h *InventoryHandler) RegisterLoss(c *fiber.Ctx) error {
	var in dto.LossRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.RegisterLoss(c.Context(), in.SiteID, in.LotID, in.Quantity, in.Reason); err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "merma registrada"})
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  Registra un movimiento ADJUSTMENT firmado (positivo o negativo, nunca cero).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "site_id, lot_id, quantity firmada ≠ 0, reason opcional"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.RegisterAdjustment(c.Context(), in.SiteID, in.LotID, in.Quantity, in.Reason); err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// ListLots godoc
// @Summary      Listar lotes de una sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        site_id        query  string  true   "Sede (UUID)"
// @Param        ingredient_id  query  string  false  "Filtrar por ingrediente (UUID)"
// @Param        limit          query  int     false  "Tamaño de página (defecto 50, máx 200)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	siteID := c.Query("site_id")
	if siteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "site_id requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	lots, err := h.audit.LotsBySite(siteID, c.Query("ingredient_id"), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for i := range lots {
		out = append(out, lotToDTO(&lots[i]))
	}
	return c.JSON(fiber.Map{
		"total": len(out),
		"lots":  out,
		"page":  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// LotMovements godoc
// @Summary      Historial de movimientos de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Lote (UUID)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id}/movements [get]
func (h *InventoryHandler) LotMovements(c *fiber.Ctx) error {
	lotID := c.Params("id")
	movements, err := h.audit.LotMovements(lotID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementToDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// RecomputeLot godoc
// @Summary      Reconciliar el saldo de un lote
// @Description  Recalcula remaining_quantity desde la suma de movimientos del libro.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Lote (UUID)"
// @Success      200  {object}  dto.RecomputeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id}/recompute [post]
func (h *InventoryHandler) RecomputeLot(c *fiber.Ctx) error {
	lotID := c.Params("id")
	balance, err := h.audit.ReconcileLot(lotID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.RecomputeResponse{LotID: lotID, RemainingQuantity: balance})
}

func lotToDTO(l *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:                l.ID,
		SiteID:            l.SiteID,
		IngredientID:      l.IngredientID,
		SupplierID:        l.SupplierID,
		LotCode:           l.LotCode,
		Unit:              l.Unit,
		ExpiryDate:        l.ExpiryDate,
		ReceivedAt:        l.ReceivedAt,
		RemainingQuantity: l.RemainingQuantity,
	}
}

func movementToDTO(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		SiteID:       m.SiteID,
		IngredientID: m.IngredientID,
		LotID:        m.LotID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		Reference:    m.Reference,
		OccurredAt:   m.OccurredAt,
	}
}

// respondDomainError traduce errores de dominio a códigos HTTP.
// Mapeo: validación → 400, no encontrado → 404, stock insuficiente,
// duplicado o contención → 409, resto → 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficientErr.Error()})
	}
	var recipeErr *domain.RecipeNotFoundError
	if errors.As(err, &recipeErr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RECIPE_NOT_FOUND", Message: recipeErr.Error()})
	}
	var quantityErr *domain.InvalidQuantityError
	if errors.As(err, &quantityErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: quantityErr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrUnitMismatch), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRecipeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la petición"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
