package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType tags the direction of a ledger entry.
type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
)

// MovementRef is the typed form of the polymorphic reference a ledger entry
// carries: the workflow record that caused the stock change. Constructing one
// through ReceiptRef / ProductionRef / AdjustmentRef is the only way to get a
// valid (table, id) pair, so misspelled reference tables cannot reach the DB.
type MovementRef struct {
	table string
	id    uuid.UUID
}

func ReceiptRef(id uuid.UUID) MovementRef    { return MovementRef{table: "receipts", id: id} }
func ProductionRef(id uuid.UUID) MovementRef { return MovementRef{table: "productions", id: id} }

// AdjustmentRef identifies a manual stock correction. Adjustments have no
// workflow row of their own, so the id is minted per adjustment call.
func AdjustmentRef(id uuid.UUID) MovementRef {
	return MovementRef{table: "manual_adjustments", id: id}
}

func (r MovementRef) Table() string { return r.table }
func (r MovementRef) ID() uuid.UUID { return r.id }

// StockMovement is one immutable ledger entry. There is no update or delete
// path anywhere in the codebase: rows are only ever created, inside the same
// transaction that moves Ingredient.CurrentStock.
//
// Invariant: BalanceAfter = BalanceBefore + Qty for IN, BalanceBefore - Qty
// for OUT. For ADJUST, Qty is a signed delta.
type StockMovement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           MovementType    `gorm:"not null"`
	Qty            decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	BalanceBefore  decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	BalanceAfter   decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	ReferenceTable string          `gorm:"not null"`
	ReferenceID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	Note           string
	CreatedAt      time.Time `gorm:"index"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
