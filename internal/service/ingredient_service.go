package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const lowStockCacheKey = "ingredients:low_stock"

// IngredientService covers registry reads and metadata writes. Stock itself
// is out of reach here — only the ledger writer moves it.
type IngredientService interface {
	Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.IngredientResponse, error)
}

type ingredientService struct {
	repo     repository.IngredientRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewIngredientService(repo repository.IngredientRepository, rdb *redis.Client, cacheTTL time.Duration) IngredientService {
	return &ingredientService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *ingredientService) Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing := &model.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		MinimumStock: req.MinimumStock,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredientToResponse(ing)
	return &resp, nil
}

func (s *ingredientService) Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	resp := ingredientToResponse(ing)
	return &resp, nil
}

func (s *ingredientService) List(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ingredients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		data = append(data, ingredientToResponse(&ing))
	}
	return &dto.IngredientListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ingredientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		ing.Name = req.Name
	}
	if req.Unit != "" {
		ing.Unit = req.Unit
	}
	ing.MinimumStock = req.MinimumStock
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredientToResponse(ing)
	return &resp, nil
}

// LowStockAlerts lists ingredients at or below their minimum. The result is
// cached in redis with a short TTL — dashboards poll this endpoint, and a few
// seconds of staleness is fine for a restocking hint.
func (s *ingredientService) LowStockAlerts(ctx context.Context) ([]dto.IngredientResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, lowStockCacheKey).Result(); err == nil {
			var data []dto.IngredientResponse
			if json.Unmarshal([]byte(cached), &data) == nil {
				return data, nil
			}
		}
	}

	ingredients, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		data = append(data, ingredientToResponse(&ing))
	}

	if s.rdb != nil {
		if b, err := json.Marshal(data); err == nil {
			// Best-effort: a cache miss next time just hits the DB.
			_ = s.rdb.Set(ctx, lowStockCacheKey, b, s.cacheTTL).Err()
		}
	}
	return data, nil
}

func ingredientToResponse(i *model.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:           i.ID.String(),
		Name:         i.Name,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
	}
}
