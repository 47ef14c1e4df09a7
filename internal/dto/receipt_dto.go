package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ReceiptFilter struct {
	PurchaseID string `form:"purchase_id" validate:"omitempty,uuid"`
	Date       string `form:"date"` // YYYY-MM-DD on received_at
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReceiptItemRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	GrossWeight  decimal.Decimal `json:"gross_weight"  validate:"required"`
	NetWeight    decimal.Decimal `json:"net_weight"    validate:"required"`
	PhotoURL     *string         `json:"photo_url"     validate:"omitempty,url"`
}

// ReceiveRequest converts a purchase into stock: one IN ledger entry per item,
// crediting net weight.
type ReceiveRequest struct {
	PurchaseID string               `json:"purchase_id" validate:"required,uuid"`
	Items      []ReceiptItemRequest `json:"items"       validate:"required,min=1,dive"`
	Note       string               `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReceiptItemResponse struct {
	IngredientID  string          `json:"ingredient_id"`
	Ingredient    string          `json:"ingredient,omitempty"`
	GrossWeight   decimal.Decimal `json:"gross_weight"`
	NetWeight     decimal.Decimal `json:"net_weight"`
	DifferenceQty decimal.Decimal `json:"difference_qty"`
	PhotoURL      *string         `json:"photo_url,omitempty"`
}

type ReceiptResponse struct {
	ID         string                `json:"id"`
	PurchaseID string                `json:"purchase_id"`
	ReceivedAt string                `json:"received_at"`
	ReceivedBy string                `json:"received_by"`
	Status     string                `json:"status"`
	Note       string                `json:"note,omitempty"`
	Items      []ReceiptItemResponse `json:"items"`
}

type ReceiptListResponse struct {
	Data  []ReceiptResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
