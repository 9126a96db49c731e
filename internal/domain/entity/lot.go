package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote físico de un ingrediente en una sede.
// RemainingQuantity es una vista materializada del libro de movimientos:
// solo la escriben los appends del ledger (o Recompute), nunca de forma
// independiente. Un lote con saldo cero se conserva para auditoría pero
// deja de ser asignable.
type Lot struct {
	ID                string
	SiteID            string
	IngredientID      string
	SupplierID        string // opcional
	LotCode           string // código de lote del proveedor, si existe
	Unit              string // kg, g, l, pieza...
	ExpiryDate        *time.Time
	ReceivedAt        time.Time
	RemainingQuantity decimal.Decimal // cache derivado del ledger
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Allocatable indica si el lote puede participar en una asignación FEFO.
func (l *Lot) Allocatable() bool {
	return l.RemainingQuantity.GreaterThan(decimal.Zero)
}

// Expires indica si el lote tiene fecha límite de consumo.
// Los lotes sin fecha se tratan como "no caducan" y se consumen al final.
func (l *Lot) Expires() bool {
	return l.ExpiryDate != nil
}
