package repository

import (
	"context"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository defines the data access contract for ingredients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error)
	ListLowStock(ctx context.Context) ([]model.Ingredient, error)
	Update(ctx context.Context, i *model.Ingredient) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row lock (SELECT ... FOR UPDATE) so two
	// concurrent workflows cannot read the same balance.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Ingredient, error)
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var ingredients []model.Ingredient
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ingredient{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepo) ListLowStock(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("current_stock <= minimum_stock").
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredientRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock decimal.Decimal) error {
	return tx.Model(&model.Ingredient{}).Where("id = ?", id).
		Update("current_stock", stock).Error
}

func (r *ingredientRepo) DB() *gorm.DB { return r.db }
