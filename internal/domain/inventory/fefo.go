package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cocina-stock/internal/domain"
	"github.com/jhoicas/cocina-stock/internal/domain/entity"
)

// Allocation es una toma de stock propuesta: cuánto sacar de qué lote.
type Allocation struct {
	LotID    string
	Quantity decimal.Decimal
	Unit     string
}

// SortFEFO ordena los lotes según la política FEFO (First Expired, First Out):
// fecha de caducidad ascendente con los lotes SIN fecha al final (se tratan
// como "no caducan": los perecederos se consumen primero). Desempate:
// ReceivedAt ascendente y luego ID ascendente, para que el orden sea
// totalmente determinista.
func SortFEFO(lots []entity.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := &lots[i], &lots[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			// ambos sin caducidad: por recepción y luego id
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		return a.ID < b.ID
	})
}

// Allocate propone de qué lotes tomar `required` unidades de un ingrediente
// (función pura de dominio: mismo snapshot de lotes, mismo resultado; no
// escribe nada). Recorre los candidatos en orden FEFO tomando
// min(saldo, faltante) de cada uno. Si el total disponible no alcanza,
// devuelve InsufficientStockError y NINGUNA asignación parcial.
func Allocate(ingredientID string, lots []entity.Lot, required decimal.Decimal, unit string) ([]Allocation, error) {
	if required.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{Reason: "la cantidad demandada debe ser > 0"}
	}

	candidates := make([]entity.Lot, 0, len(lots))
	for _, l := range lots {
		if l.Allocatable() {
			candidates = append(candidates, l)
		}
	}
	SortFEFO(candidates)

	remaining := required
	allocations := make([]Allocation, 0, len(candidates))
	for _, lot := range candidates {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := decimal.Min(lot.RemainingQuantity, remaining)
		allocations = append(allocations, Allocation{LotID: lot.ID, Quantity: take, Unit: unit})
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		available := decimal.Zero
		for _, l := range candidates {
			available = available.Add(l.RemainingQuantity)
		}
		return nil, &domain.InsufficientStockError{
			IngredientID: ingredientID,
			Required:     required,
			Available:    available,
		}
	}
	return allocations, nil
}
