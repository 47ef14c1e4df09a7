package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIngredientStartsAtZeroStock(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := service.NewIngredientService(repo, nil, time.Second)

	resp, err := svc.Create(context.Background(), dto.CreateIngredientRequest{
		Name:         "Beras",
		Unit:         "kg",
		MinimumStock: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "Beras", resp.Name)
	assert.True(t, resp.CurrentStock.IsZero())
	assert.Equal(t, "10", resp.MinimumStock.String())
}

// Metadata updates must never touch CurrentStock — that is the ledger's job.
func TestUpdateIngredientLeavesStockAlone(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := service.NewIngredientService(repo, nil, time.Second)

	i := seedIngredient(repo, "Gula", 42, 5)

	resp, err := svc.Update(context.Background(), i.ID, dto.UpdateIngredientRequest{
		Name:         "Gula Pasir",
		Unit:         "kg",
		MinimumStock: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "Gula Pasir", resp.Name)
	assert.Equal(t, "42", resp.CurrentStock.String())
	assert.Equal(t, "42", repo.ingredients[i.ID].CurrentStock.String())
}

func TestGetUnknownIngredient(t *testing.T) {
	svc := service.NewIngredientService(newStubIngredientRepo(), nil, time.Second)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrIngredientNotFound)
}

func TestLowStockAlerts(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := service.NewIngredientService(repo, nil, time.Second) // nil redis — cache is best-effort

	seedIngredient(repo, "Beras", 50, 10)  // fine
	seedIngredient(repo, "Ayam", 2, 5)     // below minimum
	seedIngredient(repo, "Minyak", 10, 10) // at minimum counts as low

	alerts, err := svc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}
