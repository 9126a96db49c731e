package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cocina-stock/internal/application/dto"
	"github.com/jhoicas/cocina-stock/internal/application/production"
)

// ProductionHandler maneja la ejecución de producciones (protegido).
type ProductionHandler struct {
	execute *production.ExecuteUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(execute *production.ExecuteUseCase) *ProductionHandler {
	return &ProductionHandler{execute: execute}
}

// Execute godoc
// @Summary      Ejecutar producción del día
// @Description  Expande las recetas a demanda de ingredientes, asigna lotes FEFO y
//               registra tandas, consumos y movimientos en una sola transacción.
//               Si falta stock de cualquier ingrediente no se persiste nada.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteProductionRequest  true  "site_id, date, lines (recipe_id + quantity_to_produce)"
// @Success      201   {object}  dto.ProductionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/execute [post]
func (h *ProductionHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req := production.Request{
		SiteID: in.SiteID,
		Date:   in.Date,
		Lines:  make([]production.RequestLine, 0, len(in.Lines)),
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}
	for _, l := range in.Lines {
		req.Lines = append(req.Lines, production.RequestLine{
			RecipeID:          l.RecipeID,
			QuantityToProduce: l.QuantityToProduce,
		})
	}

	result, err := h.execute.Execute(c.Context(), req)
	if err != nil {
		return respondDomainError(c, err)
	}

	out := dto.ProductionResultResponse{
		ProducedLotIDs:            result.ProducedLotIDs,
		LotsCreated:               result.LotsCreated,
		ConsumptionRecordsCreated: result.ConsumptionRecordsCreated,
		MovementsCreated:          result.MovementsCreated,
		Demand:                    make([]dto.IngredientDemandDTO, 0, len(result.Demand)),
		Warnings:                  result.Warnings,
	}
	for _, d := range result.Demand {
		out.Demand = append(out.Demand, dto.IngredientDemandDTO{
			IngredientID: d.IngredientID,
			Quantity:     d.Quantity,
			Unit:         d.Unit,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
