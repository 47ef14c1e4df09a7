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
	"gorm.io/gorm"
)

// PurchaseService is the procurement state machine:
// draft → waiting → {approved, rejected}. Creation inserts directly as
// waiting; approved is only ever reached through the receiving workflow.
// Purchases never touch stock.
type PurchaseService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	Amend(ctx context.Context, actorID, id uuid.UUID, req dto.AmendPurchaseRequest) (*dto.PurchaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	repo  repository.PurchaseRepository
	audit AuditService
}

func NewPurchaseService(repo repository.PurchaseRepository, audit AuditService) PurchaseService {
	return &purchaseService{repo: repo, audit: audit}
}

func (s *purchaseService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	items, err := buildPurchaseItems(req.Items)
	if err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid purchase_date: %w", err)
		}
	}

	p := &model.Purchase{
		PurchaseDate: purchaseDate,
		Status:       model.PurchaseStatusWaiting,
		TotalItems:   len(items),
		Note:         req.Note,
		CreatedBy:    actorID,
		Items:        items,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return purchaseToResponse(p), nil
}

// Amend replaces the full item set (destroy-then-recreate, no diffing) and
// appends one audit row — all inside a single transaction. Only waiting
// purchases may be amended.
func (s *purchaseService) Amend(ctx context.Context, actorID, id uuid.UUID, req dto.AmendPurchaseRequest) (*dto.PurchaseResponse, error) {
	items, err := buildPurchaseItems(req.Items)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].PurchaseID = id
	}

	// The status check happens on the row-locked purchase inside the
	// transaction: a receive landing first flips it to approved and the
	// amendment is refused, never interleaved.
	var existing *model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		existing, err = s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if existing.Status != model.PurchaseStatusWaiting {
			return fmt.Errorf("%w: purchase is %s", ErrInvalidState, existing.Status)
		}

		// The audit row captures the note / item-count delta, not a full item diff.
		type purchaseSnapshot struct {
			Note       string `json:"note"`
			TotalItems int    `json:"total_items"`
		}
		oldSnap := purchaseSnapshot{Note: existing.Note, TotalItems: existing.TotalItems}
		newSnap := purchaseSnapshot{Note: req.Note, TotalItems: len(items)}

		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return err
		}
		if err := s.repo.CreateItemsTx(tx, items); err != nil {
			return err
		}
		if err := s.repo.UpdateMetaTx(tx, id, req.Note, len(items)); err != nil {
			return err
		}
		return s.audit.RecordTx(tx, actorID, "amend", "purchases", id, oldSnap, newSnap)
	})
	if txErr != nil {
		return nil, txErr
	}

	existing.Note = req.Note
	existing.TotalItems = len(items)
	existing.Items = items
	return purchaseToResponse(existing), nil
}

// Delete cascades to the purchase items and is permitted regardless of
// status — an approved purchase keeps its stock effect because the receipt
// and its ledger entries are untouched.
func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.PurchaseStatusWaiting
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		data = append(data, *purchaseToResponse(&p))
	}
	return &dto.PurchaseListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func buildPurchaseItems(reqs []dto.PurchaseItemRequest) ([]model.PurchaseItem, error) {
	items := make([]model.PurchaseItem, 0, len(reqs))
	for _, item := range reqs {
		iid, err := uuid.Parse(item.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient_id: %w", err)
		}
		items = append(items, model.PurchaseItem{
			IngredientID: iid,
			EstimatedQty: item.EstimatedQty,
			PhotoURL:     item.PhotoURL,
			Memo:         item.Memo,
		})
	}
	return items, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		name := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
		}
		items = append(items, dto.PurchaseItemResponse{
			IngredientID: item.IngredientID.String(),
			Ingredient:   name,
			EstimatedQty: item.EstimatedQty,
			PhotoURL:     item.PhotoURL,
			Memo:         item.Memo,
		})
	}
	return &dto.PurchaseResponse{
		ID:           p.ID.String(),
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		Status:       p.Status,
		TotalItems:   p.TotalItems,
		Note:         p.Note,
		CreatedBy:    p.CreatedBy.String(),
		Items:        items,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
