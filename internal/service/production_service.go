package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductionService interface {
	Produce(ctx context.Context, actorID uuid.UUID, req dto.ProduceRequest) (*dto.ProductionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error)
	List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error)
}

type productionService struct {
	repo   repository.ProductionRepository
	ledger LedgerService
}

func NewProductionService(repo repository.ProductionRepository, ledger LedgerService) ProductionService {
	return &productionService{repo: repo, ledger: ledger}
}

// Produce records one cooking event and debits stock, all in a single
// transaction. There is no stock-availability gate: consuming more than the
// current balance simply drives it negative and the ledger shows it.
func (s *productionService) Produce(ctx context.Context, actorID uuid.UUID, req dto.ProduceRequest) (*dto.ProductionResponse, error) {
	menuID, err := uuid.Parse(req.MenuID)
	if err != nil {
		return nil, fmt.Errorf("invalid menu_id: %w", err)
	}

	productionDate := time.Now()
	if req.ProductionDate != "" {
		productionDate, err = time.Parse("2006-01-02", req.ProductionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid production_date: %w", err)
		}
	}

	type resolvedItem struct {
		ingredientID uuid.UUID
		qtyUsed      decimal.Decimal
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	for _, item := range req.Items {
		iid, err := uuid.Parse(item.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient_id: %w", err)
		}
		resolved = append(resolved, resolvedItem{ingredientID: iid, qtyUsed: item.QtyUsed})
	}

	var production model.Production
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		production = model.Production{
			MenuID:         menuID,
			ProductionDate: productionDate,
			TotalPortions:  req.TotalPortions,
			Note:           req.Note,
			PhotoURL:       req.PhotoURL,
			CreatedBy:      actorID,
		}
		for _, r := range resolved {
			production.Items = append(production.Items, model.ProductionItem{
				IngredientID: r.ingredientID,
				QtyUsed:      r.qtyUsed,
			})
		}
		if err := s.repo.CreateTx(tx, &production); err != nil {
			return err
		}

		for _, r := range resolved {
			if _, err := s.ledger.RecordMovementTx(tx, r.ingredientID, model.MovementOut, r.qtyUsed,
				model.ProductionRef(production.ID), actorID,
				fmt.Sprintf("production of %d portions", req.TotalPortions)); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return productionToResponse(&production), nil
}

func (s *productionService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return productionToResponse(p), nil
}

func (s *productionService) List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductionResponse, 0, len(productions))
	for _, p := range productions {
		data = append(data, *productionToResponse(&p))
	}
	return &dto.ProductionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func productionToResponse(p *model.Production) *dto.ProductionResponse {
	items := make([]dto.ProductionItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		name := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
		}
		items = append(items, dto.ProductionItemResponse{
			IngredientID: item.IngredientID.String(),
			Ingredient:   name,
			QtyUsed:      item.QtyUsed,
		})
	}
	return &dto.ProductionResponse{
		ID:             p.ID.String(),
		MenuID:         p.MenuID.String(),
		ProductionDate: p.ProductionDate.Format("2006-01-02"),
		TotalPortions:  p.TotalPortions,
		Note:           p.Note,
		PhotoURL:       p.PhotoURL,
		CreatedBy:      p.CreatedBy.String(),
		Items:          items,
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
