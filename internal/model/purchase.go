package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase status values. Creation inserts directly as "waiting"; "approved"
// is only ever set by the receiving workflow, never directly.
const (
	PurchaseStatusDraft    = "draft"
	PurchaseStatusWaiting  = "waiting"
	PurchaseStatusApproved = "approved"
	PurchaseStatusRejected = "rejected"
)

// Purchase is a request-for-goods. Its items are a point-in-time shopping
// estimate and carry no stock effect — stock only moves when the purchase is
// received.
type Purchase struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseDate time.Time `gorm:"not null"`
	Status       string    `gorm:"not null;default:'waiting';index"`
	TotalItems   int       `gorm:"not null"`
	Note         string
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

type PurchaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null"`
	EstimatedQty decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	PhotoURL     *string
	Memo         *string

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
