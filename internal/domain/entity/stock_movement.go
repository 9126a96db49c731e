package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock (enumeración cerrada).
const (
	MovementTypeRECEIPT     = "RECEIPT"     // recepción de mercancía (positivo)
	MovementTypeCONSUMPTION = "CONSUMPTION" // consumo por producción (negativo)
	MovementTypeLOSS        = "LOSS"        // merma / pérdida (negativo)
	MovementTypeADJUSTMENT  = "ADJUSTMENT"  // ajuste de auditoría (cualquier signo)
)

// MovementTypes tipos válidos, en orden estable.
var MovementTypes = []string{
	MovementTypeRECEIPT,
	MovementTypeCONSUMPTION,
	MovementTypeLOSS,
	MovementTypeADJUSTMENT,
}

// StockMovement es una entrada inmutable del libro de stock (append-only).
// La cantidad va con signo: positiva para RECEIPT, negativa para
// CONSUMPTION/LOSS, cualquiera (≠ 0) para ADJUSTMENT. Nunca se actualiza ni
// se borra: las correcciones son nuevos movimientos ADJUSTMENT.
type StockMovement struct {
	ID           string
	SiteID       string
	IngredientID string
	LotID        string
	Type         string
	Quantity     decimal.Decimal // con signo
	Unit         string
	Reference    string // lote de producción, orden de compra, nota de ajuste...
	OccurredAt   time.Time
	CreatedAt    time.Time
}

// ValidMovementType indica si el tipo pertenece a la enumeración.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeRECEIPT, MovementTypeCONSUMPTION, MovementTypeLOSS, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// SignValid verifica que el signo de la cantidad sea coherente con el tipo.
func (m *StockMovement) SignValid() bool {
	switch m.Type {
	case MovementTypeRECEIPT:
		return m.Quantity.GreaterThan(decimal.Zero)
	case MovementTypeCONSUMPTION, MovementTypeLOSS:
		return m.Quantity.LessThan(decimal.Zero)
	case MovementTypeADJUSTMENT:
		return !m.Quantity.IsZero()
	}
	return false
}
