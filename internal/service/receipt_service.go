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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReceiptService interface {
	Receive(ctx context.Context, actorID uuid.UUID, req dto.ReceiveRequest) (*dto.ReceiptResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error)
	List(ctx context.Context, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error)
}

type receiptService struct {
	repo      repository.ReceiptRepository
	purchases repository.PurchaseRepository
	ledger    LedgerService
}

func NewReceiptService(repo repository.ReceiptRepository, purchases repository.PurchaseRepository, ledger LedgerService) ReceiptService {
	return &receiptService{repo: repo, purchases: purchases, ledger: ledger}
}

// ── Receive ──────────────────────────────────────────────────────────────────
// One atomic transaction:
//   1. Insert the Receipt row (status fixed to accepted).
//   2. Insert one ReceiptItem per item (difference qty recorded as zero).
//   3. One IN ledger entry per item, crediting net weight.
//   4. Flip the source Purchase to approved.
// A failure at any step rolls back the whole receipt: no ledger entry, no
// ingredient update and no receipt row survive.
//
// Re-receiving the same purchase is not blocked and doubles the stock
// credit: receipts record what was physically weighed in, and reconciliation
// happens on paper afterwards.

func (s *receiptService) Receive(ctx context.Context, actorID uuid.UUID, req dto.ReceiveRequest) (*dto.ReceiptResponse, error) {
	purchaseID, err := uuid.Parse(req.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase_id: %w", err)
	}

	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if purchase.Status != model.PurchaseStatusWaiting {
		// Permitted, but worth a trace when it happens outside the normal flow.
		log.Warn().
			Str("purchase_id", purchaseID.String()).
			Str("status", purchase.Status).
			Msg("receiving against a non-waiting purchase")
	}

	type resolvedItem struct {
		ingredientID uuid.UUID
		gross        decimal.Decimal
		net          decimal.Decimal
		photoURL     *string
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	for _, item := range req.Items {
		iid, err := uuid.Parse(item.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient_id: %w", err)
		}
		resolved = append(resolved, resolvedItem{
			ingredientID: iid,
			gross:        item.GrossWeight,
			net:          item.NetWeight,
			photoURL:     item.PhotoURL,
		})
	}

	var receipt model.Receipt
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		receipt = model.Receipt{
			PurchaseID: purchaseID,
			ReceivedAt: time.Now(),
			ReceivedBy: actorID,
			Status:     model.ReceiptStatusAccepted,
			Note:       req.Note,
		}
		for _, r := range resolved {
			receipt.Items = append(receipt.Items, model.ReceiptItem{
				IngredientID:  r.ingredientID,
				GrossWeight:   r.gross,
				NetWeight:     r.net,
				DifferenceQty: decimal.Zero,
				PhotoURL:      r.photoURL,
			})
		}
		if err := s.repo.CreateTx(tx, &receipt); err != nil {
			return err
		}

		// Net weight, not gross, is what the kitchen can actually use.
		for _, r := range resolved {
			if _, err := s.ledger.RecordMovementTx(tx, r.ingredientID, model.MovementIn, r.net,
				model.ReceiptRef(receipt.ID), actorID,
				fmt.Sprintf("receipt for purchase %s", purchaseID)); err != nil {
				return err
			}
		}

		return s.purchases.UpdateStatusTx(tx, purchaseID, model.PurchaseStatusApproved)
	})
	if txErr != nil {
		return nil, txErr
	}

	return receiptToResponse(&receipt), nil
}

func (s *receiptService) Get(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error) {
	rc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return receiptToResponse(rc), nil
}

func (s *receiptService) List(ctx context.Context, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	receipts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, rc := range receipts {
		data = append(data, *receiptToResponse(&rc))
	}
	return &dto.ReceiptListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func receiptToResponse(rc *model.Receipt) *dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(rc.Items))
	for _, item := range rc.Items {
		name := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
		}
		items = append(items, dto.ReceiptItemResponse{
			IngredientID:  item.IngredientID.String(),
			Ingredient:    name,
			GrossWeight:   item.GrossWeight,
			NetWeight:     item.NetWeight,
			DifferenceQty: item.DifferenceQty,
			PhotoURL:      item.PhotoURL,
		})
	}
	return &dto.ReceiptResponse{
		ID:         rc.ID.String(),
		PurchaseID: rc.PurchaseID.String(),
		ReceivedAt: rc.ReceivedAt.Format("2006-01-02T15:04:05Z"),
		ReceivedBy: rc.ReceivedBy.String(),
		Status:     rc.Status,
		Note:       rc.Note,
		Items:      items,
	}
}
