package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementFilter defines filters for listing ledger entries.
type StockMovementFilter struct {
	IngredientID *uuid.UUID
	Type         model.MovementType
	Page         int
	Limit        int
}

// StockMovementRepository is append-only: the ledger has no update or delete
// path, so none is exposed here.
type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error)

	// LatestByIngredientTx runs inside the ledger writer's transaction so the
	// chain head it reports cannot move under the caller.
	LatestByIngredientTx(tx *gorm.DB, ingredientID uuid.UUID) (*model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Preload("Ingredient")
	if filter.IngredientID != nil {
		q = q.Where("ingredient_id = ?", *filter.IngredientID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) LatestByIngredientTx(tx *gorm.DB, ingredientID uuid.UUID) (*model.StockMovement, error) {
	var m model.StockMovement
	err := tx.
		Where("ingredient_id = ?", ingredientID).
		Order("created_at DESC").
		First(&m).Error
	return &m, err
}
