package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository interface {
	CreateTx(tx *gorm.DB, rc *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	List(ctx context.Context, filter dto.ReceiptFilter) ([]model.Receipt, int64, error)
	DB() *gorm.DB
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) CreateTx(tx *gorm.DB, rc *model.Receipt) error {
	return tx.Create(rc).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rc model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items.Ingredient").
		Preload("Purchase").
		First(&rc, id).Error
	return &rc, err
}

func (r *receiptRepo) List(ctx context.Context, filter dto.ReceiptFilter) ([]model.Receipt, int64, error) {
	var receipts []model.Receipt
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Receipt{})
	if filter.PurchaseID != "" {
		q = q.Where("purchase_id = ?", filter.PurchaseID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(received_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Ingredient").
		Order("received_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&receipts).Error
	return receipts, total, err
}

func (r *receiptRepo) DB() *gorm.DB { return r.db }
