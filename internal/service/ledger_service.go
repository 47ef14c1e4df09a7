package service

import (
	"context"
	"errors"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService is the only component allowed to mutate an ingredient's stock.
// Every change goes through RecordMovementTx, which couples the Ingredient
// update and the ledger insert inside the caller's transaction so the two can
// never diverge.
type LedgerService interface {
	// RecordMovementTx must run inside a live transaction. It row-locks the
	// ingredient, chains the balance from the locked value, persists the new
	// CurrentStock and appends the ledger entry. Stock is deliberately allowed
	// to go negative: kitchens cook before the paperwork catches up.
	RecordMovementTx(tx *gorm.DB, ingredientID uuid.UUID, typ model.MovementType, qty decimal.Decimal, ref model.MovementRef, actorID uuid.UUID, note string) (*model.StockMovement, error)

	// Adjust is the manual ADJUST path; it opens its own transaction.
	Adjust(ctx context.Context, actorID, ingredientID uuid.UUID, req dto.AdjustStockRequest) (*dto.MovementResponse, error)

	ListMovements(ctx context.Context, ingredientID *uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type ledgerService struct {
	ingredients repository.IngredientRepository
	movements   repository.StockMovementRepository
}

func NewLedgerService(ingredients repository.IngredientRepository, movements repository.StockMovementRepository) LedgerService {
	return &ledgerService{ingredients: ingredients, movements: movements}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ledgerService) RecordMovementTx(tx *gorm.DB, ingredientID uuid.UUID, typ model.MovementType, qty decimal.Decimal, ref model.MovementRef, actorID uuid.UUID, note string) (*model.StockMovement, error) {
	// IN/OUT quantities are magnitudes; only ADJUST carries a signed delta.
	if qty.IsNegative() && typ != model.MovementAdjust {
		return nil, ErrNegativeQty
	}

	ing, err := s.ingredients.FindByIDForUpdateTx(tx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	before := ing.CurrentStock

	// The locked ingredient row is the source of truth; if the ledger head
	// disagrees with it, something wrote stock outside this service. Flag it
	// but keep chaining from the locked value.
	if last, lastErr := s.movements.LatestByIngredientTx(tx, ingredientID); lastErr == nil {
		if !last.BalanceAfter.Equal(before) {
			log.Warn().
				Str("ingredient_id", ingredientID.String()).
				Str("ledger_head", last.BalanceAfter.String()).
				Str("current_stock", before.String()).
				Msg("stock drift between ledger head and ingredient row")
		}
	} else if !errors.Is(lastErr, gorm.ErrRecordNotFound) {
		return nil, lastErr
	}

	var after decimal.Decimal
	switch typ {
	case model.MovementIn:
		after = before.Add(qty)
	case model.MovementOut:
		after = before.Sub(qty)
	case model.MovementAdjust:
		after = before.Add(qty)
	default:
		return nil, errors.New("unknown movement type")
	}

	if err := s.ingredients.SetStockTx(tx, ingredientID, after); err != nil {
		return nil, err
	}

	mov := &model.StockMovement{
		IngredientID:   ingredientID,
		Type:           typ,
		Qty:            qty,
		BalanceBefore:  before,
		BalanceAfter:   after,
		ReferenceTable: ref.Table(),
		ReferenceID:    ref.ID(),
		CreatedBy:      actorID,
		Note:           note,
	}
	if err := s.movements.CreateTx(tx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *ledgerService) Adjust(ctx context.Context, actorID, ingredientID uuid.UUID, req dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	var mov *model.StockMovement
	txErr := runTx(ctx, s.ingredients.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.RecordMovementTx(tx, ingredientID, model.MovementAdjust, req.Qty,
			model.AdjustmentRef(uuid.New()), actorID, req.Note)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := movementToResponse(mov)
	return &resp, nil
}

func (s *ledgerService) ListMovements(ctx context.Context, ingredientID *uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, repository.StockMovementFilter{
		IngredientID: ingredientID,
		Type:         model.MovementType(filter.Type),
		Page:         filter.Page,
		Limit:        filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		data = append(data, movementToResponse(&m))
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	name := ""
	if m.Ingredient != nil {
		name = m.Ingredient.Name
	}
	return dto.MovementResponse{
		ID:             m.ID.String(),
		IngredientID:   m.IngredientID.String(),
		Ingredient:     name,
		Type:           string(m.Type),
		Qty:            m.Qty,
		BalanceBefore:  m.BalanceBefore,
		BalanceAfter:   m.BalanceAfter,
		ReferenceTable: m.ReferenceTable,
		ReferenceID:    m.ReferenceID.String(),
		CreatedBy:      m.CreatedBy.String(),
		Note:           m.Note,
		CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
