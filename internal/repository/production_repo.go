package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionRepository interface {
	CreateTx(tx *gorm.DB, p *model.Production) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Production, error)
	List(ctx context.Context, filter dto.ProductionFilter) ([]model.Production, int64, error)
	DB() *gorm.DB
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) CreateTx(tx *gorm.DB, p *model.Production) error {
	return tx.Create(p).Error
}

func (r *productionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Production, error) {
	var p model.Production
	err := r.db.WithContext(ctx).Preload("Items.Ingredient").First(&p, id).Error
	return &p, err
}

func (r *productionRepo) List(ctx context.Context, filter dto.ProductionFilter) ([]model.Production, int64, error) {
	var productions []model.Production
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Production{})
	if filter.MenuID != "" {
		q = q.Where("menu_id = ?", filter.MenuID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(production_date) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Ingredient").
		Order("production_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&productions).Error
	return productions, total, err
}

func (r *productionRepo) DB() *gorm.DB { return r.db }
