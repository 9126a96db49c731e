package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrRecipeNotFound      = errors.New("receta no encontrada")
	ErrUnitMismatch        = errors.New("unidades incompatibles para el ingrediente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintentar la operación")
)

// InsufficientStockError indica que la demanda de un ingrediente no puede
// satisfacerse con los lotes disponibles. Se reporta por ingrediente y la
// petición completa se aborta sin escribir nada.
type InsufficientStockError struct {
	IngredientID string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para ingrediente %s: requerido=%s disponible=%s",
		e.IngredientID, e.Required.String(), e.Available.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// RecipeNotFoundError indica que la receta pedida no existe en el catálogo.
type RecipeNotFoundError struct {
	RecipeID string
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("receta %s no encontrada", e.RecipeID)
}

func (e *RecipeNotFoundError) Is(target error) bool {
	return target == ErrRecipeNotFound || target == ErrNotFound
}

// InvalidQuantityError indica una cantidad <= 0 donde no aplica, o un
// movimiento que dejaría el saldo de un lote en negativo.
type InvalidQuantityError struct {
	Reason string
}

func (e *InvalidQuantityError) Error() string {
	return "cantidad inválida: " + e.Reason
}

func (e *InvalidQuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}

// ConcurrencyConflictError indica contención de bloqueo/transacción.
// La operación no escribió nada; el caller puede reintentarla completa.
type ConcurrencyConflictError struct {
	Cause error
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return "conflicto de concurrencia: " + e.Cause.Error()
	}
	return "conflicto de concurrencia"
}

func (e *ConcurrencyConflictError) Unwrap() error { return e.Cause }

func (e *ConcurrencyConflictError) Is(target error) bool {
	return target == ErrConcurrencyConflict
}
