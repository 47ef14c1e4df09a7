package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PurchaseFilter is bound from the query string of GET /v1/purchases.
type PurchaseFilter struct {
	Status string `form:"status,default=waiting"` // draft | waiting | approved | rejected | all
	Date   string `form:"date"`                   // YYYY-MM-DD on purchase_date
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseItemRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	EstimatedQty decimal.Decimal `json:"estimated_qty" validate:"required"`
	PhotoURL     *string         `json:"photo_url"     validate:"omitempty,url"`
	Memo         *string         `json:"memo"`
}

type CreatePurchaseRequest struct {
	PurchaseDate string                `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Items        []PurchaseItemRequest `json:"items"         validate:"required,min=1,dive"`
	Note         string                `json:"note"`
}

// AmendPurchaseRequest replaces the full item set; there is no per-item diff.
type AmendPurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  string                `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseItemResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Ingredient   string          `json:"ingredient,omitempty"`
	EstimatedQty decimal.Decimal `json:"estimated_qty"`
	PhotoURL     *string         `json:"photo_url,omitempty"`
	Memo         *string         `json:"memo,omitempty"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	PurchaseDate string                 `json:"purchase_date"`
	Status       string                 `json:"status"`
	TotalItems   int                    `json:"total_items"`
	Note         string                 `json:"note,omitempty"`
	CreatedBy    string                 `json:"created_by"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
