package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// IngredientFilter is bound from the query string of GET /v1/ingredients.
type IngredientFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateIngredientRequest struct {
	Name         string          `json:"name"          validate:"required,min=1,max=150"`
	Unit         string          `json:"unit"          validate:"required,min=1,max=20"`
	MinimumStock decimal.Decimal `json:"minimum_stock" validate:"min=0"`
}

type UpdateIngredientRequest struct {
	Name         string          `json:"name"          validate:"omitempty,min=1,max=150"`
	Unit         string          `json:"unit"          validate:"omitempty,min=1,max=20"`
	MinimumStock decimal.Decimal `json:"minimum_stock" validate:"min=0"`
}

// AdjustStockRequest is the manual ADJUST path. Qty is a signed delta: a
// positive value adds stock, a negative one removes it.
type AdjustStockRequest struct {
	Qty  decimal.Decimal `json:"qty"  validate:"required"`
	Note string          `json:"note" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

type IngredientListResponse struct {
	Data  []IngredientResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// MovementResponse is one ledger entry as exposed to clients.
type MovementResponse struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	Ingredient     string          `json:"ingredient,omitempty"`
	Type           string          `json:"type"`
	Qty            decimal.Decimal `json:"qty"`
	BalanceBefore  decimal.Decimal `json:"balance_before"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	ReferenceTable string          `json:"reference_table"`
	ReferenceID    string          `json:"reference_id"`
	CreatedBy      string          `json:"created_by"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// MovementFilter is bound from the query string of the movement listing.
type MovementFilter struct {
	Type  string `form:"type"  validate:"omitempty,oneof=IN OUT ADJUST"`
	Page  int    `form:"page,default=1"    validate:"min=1"`
	Limit int    `form:"limit,default=100" validate:"min=1,max=500"`
}
