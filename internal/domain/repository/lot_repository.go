package repository

import "github.com/jhoicas/cocina-stock/internal/domain/entity"

// LotRepository es el puerto del registro de lotes físicos.
// El saldo cacheado (RemainingQuantity) NO se escribe por aquí: lo mantiene
// el LedgerRepository en el mismo atómico que cada movimiento.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Lot, error)

	// ListAllocatable devuelve los lotes con saldo > 0 de un ingrediente en
	// una sede, ya en orden FEFO (caducidad ASC, sin caducidad al final,
	// desempate por recepción e id).
	ListAllocatable(siteID, ingredientID string) ([]entity.Lot, error)

	// ListAllocatableForUpdate igual que ListAllocatable pero bloqueando las
	// filas (SELECT ... FOR UPDATE) dentro de la transacción en curso, para
	// que asignación y commit se ejecuten con acceso exclusivo por lote.
	ListAllocatableForUpdate(siteID, ingredientID string) ([]entity.Lot, error)

	// ListBySite lista los lotes de una sede (incluye saldo cero, auditoría).
	// ingredientID vacío lista todos los ingredientes.
	ListBySite(siteID, ingredientID string, limit, offset int) ([]entity.Lot, error)
}
