package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cocina-stock/internal/application/dto"
	"github.com/jhoicas/cocina-stock/internal/application/inventory"
)

// TraceabilityHandler proyección de trazabilidad por receta, sede y día (protegido).
type TraceabilityHandler struct {
	uc *inventory.TraceabilityUseCase
}

// NewTraceabilityHandler construye el handler.
func NewTraceabilityHandler(uc *inventory.TraceabilityUseCase) *TraceabilityHandler {
	return &TraceabilityHandler{uc: uc}
}

// Events godoc
// @Summary      Trazabilidad de una receta en un día
// @Description  Devuelve los eventos PRODUCED y CONSUMED de la receta en la sede
//               durante el día indicado, ordenados por ocurrencia.
// @Tags         traceability
// @Security     Bearer
// @Produce      json
// @Param        site_id    query  string  true  "Sede (UUID)"
// @Param        recipe_id  query  string  true  "Receta (UUID)"
// @Param        date       query  string  true  "Día (YYYY-MM-DD)"
// @Success      200  {array}   dto.TraceabilityEventDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/traceability/events [get]
func (h *TraceabilityHandler) Events(c *fiber.Ctx) error {
	siteID := c.Query("site_id")
	recipeID := c.Query("recipe_id")
	dateStr := c.Query("date")
	if siteID == "" || recipeID == "" || dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "site_id, recipe_id y date son requeridos"})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}

	events, err := h.uc.Events(siteID, date, recipeID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TraceabilityEventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.TraceabilityEventDTO{
			Type:          e.Type,
			OccurredAt:    e.OccurredAt,
			ProducedLotID: e.ProducedLotID,
			LotID:         e.LotID,
			IngredientID:  e.IngredientID,
			Quantity:      e.Quantity,
			Unit:          e.Unit,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "events": out})
}
