package repository

import (
	"time"

	"github.com/jhoicas/cocina-stock/internal/domain/entity"
)

// ProducedLotRepository persiste las tandas de producción (trazabilidad).
type ProducedLotRepository interface {
	Create(lot *entity.ProducedLot) error
	GetByID(id string) (*entity.ProducedLot, error)
	// ListBySiteAndDate lista las tandas producidas en la sede el día `date`.
	ListBySiteAndDate(siteID string, date time.Time) ([]*entity.ProducedLot, error)
}

// ConsumptionRecordRepository persiste los enlaces producción → lotes consumidos.
type ConsumptionRecordRepository interface {
	Create(record *entity.ConsumptionRecord) error
	ListByProducedLot(producedLotID string) ([]*entity.ConsumptionRecord, error)
}
