package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx row-locks the purchase so a concurrent receive
	// cannot change its status mid-amendment.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	UpdateMetaTx(tx *gorm.DB, id uuid.UUID, note string, totalItems int) error
	DeleteItemsTx(tx *gorm.DB, purchaseID uuid.UUID) error
	CreateItemsTx(tx *gorm.DB, items []model.PurchaseItem) error

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Items.Ingredient").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(purchase_date) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Ingredient").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&purchases).Error
	return purchases, total, err
}

// Delete removes the purchase and its items in one transaction. Permitted
// regardless of status.
func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&model.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Purchase{}, id).Error
	})
}

func (r *purchaseRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Purchase{}).Where("id = ?", id).Update("status", status).Error
}

func (r *purchaseRepo) UpdateMetaTx(tx *gorm.DB, id uuid.UUID, note string, totalItems int) error {
	return tx.Model(&model.Purchase{}).Where("id = ?", id).Updates(map[string]interface{}{
		"note":        note,
		"total_items": totalItems,
	}).Error
}

func (r *purchaseRepo) DeleteItemsTx(tx *gorm.DB, purchaseID uuid.UUID) error {
	return tx.Where("purchase_id = ?", purchaseID).Delete(&model.PurchaseItem{}).Error
}

func (r *purchaseRepo) CreateItemsTx(tx *gorm.DB, items []model.PurchaseItem) error {
	return tx.Create(&items).Error
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
