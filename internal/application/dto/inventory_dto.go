package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveRequest body para POST /api/inventory/receipts.
type ReceiveRequest struct {
	SiteID       string          `json:"site_id"`
	IngredientID string          `json:"ingredient_id"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	LotCode      string          `json:"lot_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"` // nulo = no caduca
}

// ReceiveResponse devuelve el lote creado.
type ReceiveResponse struct {
	LotID string `json:"lot_id"`
}

// LossRequest body para POST /api/inventory/losses.
type LossRequest struct {
	SiteID   string          `json:"site_id"`
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"` // positiva; se registra en negativo
	Reason   string          `json:"reason,omitempty"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	SiteID   string          `json:"site_id"`
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"` // firmada, nunca cero
	Reason   string          `json:"reason,omitempty"`
}

// LotResponse representación de un lote para la API.
type LotResponse struct {
	ID                string          `json:"id"`
	SiteID            string          `json:"site_id"`
	IngredientID      string          `json:"ingredient_id"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	LotCode           string          `json:"lot_code,omitempty"`
	Unit              string          `json:"unit"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	ReceivedAt        time.Time       `json:"received_at"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}

// MovementResponse una entrada del ledger para la API.
type MovementResponse struct {
	ID           string          `json:"id"`
	SiteID       string          `json:"site_id"`
	IngredientID string          `json:"ingredient_id"`
	LotID        string          `json:"lot_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"` // firmada
	Unit         string          `json:"unit"`
	Reference    string          `json:"reference,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// RecomputeResponse saldo reconciliado de un lote.
type RecomputeResponse struct {
	LotID             string          `json:"lot_id"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}
