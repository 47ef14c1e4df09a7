package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is the registry entry for one kitchen ingredient.
// CurrentStock is denormalized from the stock ledger for fast reads:
// it must always equal the BalanceAfter of the most recently created
// StockMovement for this ingredient, and only the ledger writer
// (service.LedgerService) is allowed to change it.
type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"index;not null"`
	Unit         string          `gorm:"not null;default:'gram'"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
