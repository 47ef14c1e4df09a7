package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Production records one cooking event. Creating one is the only trigger for
// OUT ledger entries. Consumption may push an ingredient below zero — real
// kitchens cook before the paperwork catches up.
type Production struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductionDate time.Time `gorm:"not null"`
	TotalPortions  int       `gorm:"not null"`
	Note           string
	PhotoURL       *string
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time

	Items []ProductionItem `gorm:"foreignKey:ProductionID;constraint:OnDelete:CASCADE"`
}

type ProductionItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null"`
	QtyUsed      decimal.Decimal `gorm:"type:decimal(14,3);not null"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
