package service_test

import (
	"context"
	"testing"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory IngredientRepository stub ──────────────────────────────────────

type stubIngredientRepo struct {
	ingredients map[uuid.UUID]*model.Ingredient
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{ingredients: make(map[uuid.UUID]*model.Ingredient)}
}

func (r *stubIngredientRepo) Create(_ context.Context, i *model.Ingredient) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubIngredientRepo) List(_ context.Context, _ dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var result []model.Ingredient
	for _, i := range r.ingredients {
		result = append(result, *i)
	}
	return result, int64(len(result)), nil
}

func (r *stubIngredientRepo) ListLowStock(_ context.Context) ([]model.Ingredient, error) {
	var result []model.Ingredient
	for _, i := range r.ingredients {
		if i.CurrentStock.LessThanOrEqual(i.MinimumStock) {
			result = append(result, *i)
		}
	}
	return result, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, i *model.Ingredient) error {
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubIngredientRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock decimal.Decimal) error {
	i, ok := r.ingredients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.CurrentStock = stock
	return nil
}

func (r *stubIngredientRepo) DB() *gorm.DB { return nil }

var _ repository.IngredientRepository = (*stubIngredientRepo)(nil)

// ── In-memory StockMovementRepository stub ───────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var result []model.StockMovement
	for _, m := range r.movements {
		if filter.IngredientID != nil && m.IngredientID != *filter.IngredientID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		result = append(result, m)
	}
	return result, int64(len(result)), nil
}

func (r *stubMovementRepo) LatestByIngredientTx(_ *gorm.DB, ingredientID uuid.UUID) (*model.StockMovement, error) {
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].IngredientID == ingredientID {
			return &r.movements[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func seedIngredient(repo *stubIngredientRepo, name string, stock, minimum float64) *model.Ingredient {
	i := &model.Ingredient{
		ID:           uuid.New(),
		Name:         name,
		Unit:         "gram",
		CurrentStock: decimal.NewFromFloat(stock),
		MinimumStock: decimal.NewFromFloat(minimum),
	}
	repo.ingredients[i.ID] = i
	return i
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRecordMovementChainsBalances(t *testing.T) {
	ingredients := newStubIngredientRepo()
	movements := newStubMovementRepo()
	svc := service.NewLedgerService(ingredients, movements)

	actor := uuid.New()
	beras := seedIngredient(ingredients, "Beras", 100, 10)

	// Receive 20 kg: 100 → 120
	mov, err := svc.RecordMovementTx(nil, beras.ID, model.MovementIn, decimal.NewFromInt(20),
		model.ReceiptRef(uuid.New()), actor, "delivery")
	require.NoError(t, err)
	assert.Equal(t, "100", mov.BalanceBefore.String())
	assert.Equal(t, "120", mov.BalanceAfter.String())
	assert.Equal(t, "120", ingredients.ingredients[beras.ID].CurrentStock.String())

	// Cook with 150 kg: 120 → -30. Negative balances are legal.
	mov, err = svc.RecordMovementTx(nil, beras.ID, model.MovementOut, decimal.NewFromInt(150),
		model.ProductionRef(uuid.New()), actor, "nasi goreng")
	require.NoError(t, err)
	assert.Equal(t, "120", mov.BalanceBefore.String())
	assert.Equal(t, "-30", mov.BalanceAfter.String())
	assert.Equal(t, "-30", ingredients.ingredients[beras.ID].CurrentStock.String())

	// Every change left a ledger entry and each entry chains onto the last.
	require.Len(t, movements.movements, 2)
	assert.Equal(t, movements.movements[0].BalanceAfter.String(), movements.movements[1].BalanceBefore.String())
}

func TestRecordMovementRejectsNegativeMagnitude(t *testing.T) {
	ingredients := newStubIngredientRepo()
	movements := newStubMovementRepo()
	svc := service.NewLedgerService(ingredients, movements)

	i := seedIngredient(ingredients, "Gula", 50, 5)

	_, err := svc.RecordMovementTx(nil, i.ID, model.MovementIn, decimal.NewFromInt(-5),
		model.ReceiptRef(uuid.New()), uuid.New(), "")
	assert.ErrorIs(t, err, service.ErrNegativeQty)

	_, err = svc.RecordMovementTx(nil, i.ID, model.MovementOut, decimal.NewFromInt(-5),
		model.ProductionRef(uuid.New()), uuid.New(), "")
	assert.ErrorIs(t, err, service.ErrNegativeQty)

	// Nothing was written.
	assert.Equal(t, "50", ingredients.ingredients[i.ID].CurrentStock.String())
	assert.Empty(t, movements.movements)
}

// If something mutated current_stock behind the ledger's back, the next
// movement still chains from the locked ingredient row, not from the ledger
// head. The drift is logged, never silently corrected.
func TestRecordMovementChainsFromLockedStockNotLedgerHead(t *testing.T) {
	ingredients := newStubIngredientRepo()
	movements := newStubMovementRepo()
	svc := service.NewLedgerService(ingredients, movements)

	i := seedIngredient(ingredients, "Kecap", 40, 4)

	// A stale ledger head that disagrees with the ingredient row.
	movements.movements = append(movements.movements, model.StockMovement{
		ID:            uuid.New(),
		IngredientID:  i.ID,
		Type:          model.MovementIn,
		Qty:           decimal.NewFromInt(5),
		BalanceBefore: decimal.NewFromInt(30),
		BalanceAfter:  decimal.NewFromInt(35),
	})

	mov, err := svc.RecordMovementTx(nil, i.ID, model.MovementOut, decimal.NewFromInt(10),
		model.ProductionRef(uuid.New()), uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "40", mov.BalanceBefore.String())
	assert.Equal(t, "30", mov.BalanceAfter.String())
	assert.Equal(t, "30", ingredients.ingredients[i.ID].CurrentStock.String())
}

func TestRecordMovementUnknownIngredient(t *testing.T) {
	svc := service.NewLedgerService(newStubIngredientRepo(), newStubMovementRepo())

	_, err := svc.RecordMovementTx(nil, uuid.New(), model.MovementIn, decimal.NewFromInt(1),
		model.ReceiptRef(uuid.New()), uuid.New(), "")
	assert.ErrorIs(t, err, service.ErrIngredientNotFound)
}

func TestAdjustSignedDelta(t *testing.T) {
	ingredients := newStubIngredientRepo()
	movements := newStubMovementRepo()
	svc := service.NewLedgerService(ingredients, movements)

	actor := uuid.New()
	i := seedIngredient(ingredients, "Minyak", 10, 2)

	// Stocktake found spillage: -2.5
	resp, err := svc.Adjust(context.Background(), actor, i.ID, dto.AdjustStockRequest{
		Qty:  decimal.NewFromFloat(-2.5),
		Note: "spillage during stocktake",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADJUST", resp.Type)
	assert.Equal(t, "10", resp.BalanceBefore.String())
	assert.Equal(t, "7.5", resp.BalanceAfter.String())
	assert.Equal(t, "manual_adjustments", resp.ReferenceTable)

	// Correction upward works the same way.
	resp, err = svc.Adjust(context.Background(), actor, i.ID, dto.AdjustStockRequest{
		Qty:  decimal.NewFromFloat(1.5),
		Note: "found an unopened bottle",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", resp.BalanceAfter.String())
	assert.Equal(t, "9", ingredients.ingredients[i.ID].CurrentStock.String())
}

func TestMovementRefConstructors(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "receipts", model.ReceiptRef(id).Table())
	assert.Equal(t, "productions", model.ProductionRef(id).Table())
	assert.Equal(t, "manual_adjustments", model.AdjustmentRef(id).Table())
	assert.Equal(t, id, model.ReceiptRef(id).ID())
}

func TestListMovementsFiltersByType(t *testing.T) {
	ingredients := newStubIngredientRepo()
	movements := newStubMovementRepo()
	svc := service.NewLedgerService(ingredients, movements)

	actor := uuid.New()
	i := seedIngredient(ingredients, "Telur", 30, 12)

	_, err := svc.RecordMovementTx(nil, i.ID, model.MovementIn, decimal.NewFromInt(12),
		model.ReceiptRef(uuid.New()), actor, "")
	require.NoError(t, err)
	_, err = svc.RecordMovementTx(nil, i.ID, model.MovementOut, decimal.NewFromInt(6),
		model.ProductionRef(uuid.New()), actor, "")
	require.NoError(t, err)

	resp, err := svc.ListMovements(context.Background(), &i.ID, dto.MovementFilter{Type: "OUT"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "OUT", resp.Data[0].Type)
}
