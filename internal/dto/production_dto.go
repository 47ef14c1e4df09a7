package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductionFilter struct {
	MenuID string `form:"menu_id" validate:"omitempty,uuid"`
	Date   string `form:"date"` // YYYY-MM-DD on production_date
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProductionItemRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	QtyUsed      decimal.Decimal `json:"qty_used"      validate:"required"`
}

type ProduceRequest struct {
	MenuID         string                  `json:"menu_id"         validate:"required,uuid"`
	ProductionDate string                  `json:"production_date" validate:"omitempty,datetime=2006-01-02"`
	TotalPortions  int                     `json:"total_portions"  validate:"required,min=1"`
	Items          []ProductionItemRequest `json:"items"           validate:"required,min=1,dive"`
	Note           string                  `json:"note"`
	PhotoURL       *string                 `json:"photo_url"       validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductionItemResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Ingredient   string          `json:"ingredient,omitempty"`
	QtyUsed      decimal.Decimal `json:"qty_used"`
}

type ProductionResponse struct {
	ID             string                   `json:"id"`
	MenuID         string                   `json:"menu_id"`
	ProductionDate string                   `json:"production_date"`
	TotalPortions  int                      `json:"total_portions"`
	Note           string                   `json:"note,omitempty"`
	PhotoURL       *string                  `json:"photo_url,omitempty"`
	CreatedBy      string                   `json:"created_by"`
	Items          []ProductionItemResponse `json:"items"`
	CreatedAt      string                   `json:"created_at"`
}

type ProductionListResponse struct {
	Data  []ProductionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
