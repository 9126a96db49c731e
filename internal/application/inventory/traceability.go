package inventory

import (
	"time"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/repository"
)

// TraceabilityUseCase responde "qué pasó con la receta R en la sede S el
// día D": proyección de solo lectura sobre ProducedLot + ConsumptionRecord
// + StockMovement, para las pantallas de operación.
type TraceabilityUseCase struct {
	traceRepo repository.TraceabilityRepository
}

// NewTraceabilityUseCase construye el caso de uso.
func NewTraceabilityUseCase(traceRepo repository.TraceabilityRepository) *TraceabilityUseCase {
	return &TraceabilityUseCase{traceRepo: traceRepo}
}

// Events devuelve los eventos de trazabilidad ordenados por ocurrencia.
func (uc *TraceabilityUseCase) Events(siteID string, date time.Time, recipeID string) ([]repository.TraceabilityEvent, error) {
	if siteID == "" || recipeID == "" || date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return uc.traceRepo.Events(siteID, date, recipeID)
}
