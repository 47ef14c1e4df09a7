package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ReceiptStatusAccepted = "accepted"
	ReceiptStatusRejected = "rejected"
)

// Receipt records the physical weigh-in of a purchase. Creating one is the
// only trigger for IN ledger entries; NetWeight (not GrossWeight) is what
// gets credited to stock.
type Receipt struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceivedAt time.Time `gorm:"not null"`
	ReceivedBy uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"not null;default:'accepted'"`
	Note       string
	CreatedAt  time.Time

	Purchase *Purchase     `gorm:"foreignKey:PurchaseID"`
	Items    []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

type ReceiptItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReceiptID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null"`
	GrossWeight  decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	NetWeight    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	// DifferenceQty is recorded as zero for now; deriving it from the
	// purchase estimate is pending a decision on how to match items.
	DifferenceQty decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	PhotoURL      *string

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
