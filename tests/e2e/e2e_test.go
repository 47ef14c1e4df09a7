//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full supply chain cycle: purchase → receive → produce, with the stock
//     ledger chaining balances across workflows (and going negative).
//   - Concurrent productions against one ingredient serialize on the row lock.
//   - Amending an already-received purchase is refused.
//   - A receive that fails partway rolls back the receipt row, the ledger
//     entries and the stock update together.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ezazee/dapur-gempita-sub000/internal/config"
	"github.com/ezazee/dapur-gempita-sub000/internal/infra"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/router"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // SUPER_ADMIN JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("dapur_test"),
		tcPostgres.WithUsername("dapur"),
		tcPostgres.WithPassword("dapur"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                    8000,
		Env:                     "test",
		JWTSecret:               "test-secret-key",
		JWTExpirationHours:      8,
		JWTRefreshHours:         24,
		DatabaseURL:             pgURL,
		RedisURL:                rdURL,
		LowStockCacheTTLSeconds: 1,
	}

	// NewDatabase runs AutoMigrate for all tables.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed SUPER_ADMIN
	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "admin",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         model.RoleSuperAdmin,
		Active:       true,
	}).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin1234"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createIngredient(t *testing.T, env *testEnv, name string, minimum float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/ingredients",
		jsonBody(t, map[string]any{"name": name, "unit": "kg", "minimum_stock": minimum}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ing struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &ing)
	return ing.ID
}

func adjustStock(t *testing.T, env *testEnv, ingredientID string, qty float64, note string) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/ingredients/"+ingredientID+"/adjust",
		jsonBody(t, map[string]any{"qty": qty, "note": note}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func currentStock(t *testing.T, env *testEnv, ingredientID string) string {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/ingredients/"+ingredientID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ing struct {
		CurrentStock string `json:"current_stock"`
	}
	decodeJSON(t, resp, &ing)
	return ing.CurrentStock
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full cycle: seed 100 kg of rice, plan a purchase, receive 20 kg net,
// cook with 150 kg. The balance chains 100 → 120 → -30 across workflows.
func TestE2E_SupplyChainCycle(t *testing.T) {
	env := setupTestEnv(t)

	berasID := createIngredient(t, env, "Beras", 10)
	adjustStock(t, env, berasID, 100, "opening stock")
	require.Equal(t, "100", currentStock(t, env, berasID))

	// Plan the purchase — stock must not move.
	purchaseResp := do(t, env.server, "POST", "/v1/purchases",
		jsonBody(t, map[string]any{
			"note":  "rice restock",
			"items": []map[string]any{{"ingredient_id": berasID, "estimated_qty": 20}},
		}), env.token)
	require.Equal(t, http.StatusCreated, purchaseResp.StatusCode)
	var purchase struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, purchaseResp, &purchase)
	assert.Equal(t, "waiting", purchase.Status)
	require.Equal(t, "100", currentStock(t, env, berasID))

	// Receive: net weight credited, purchase approved.
	receiveResp := do(t, env.server, "POST", "/v1/receipts",
		jsonBody(t, map[string]any{
			"purchase_id": purchase.ID,
			"items": []map[string]any{
				{"ingredient_id": berasID, "gross_weight": 20.6, "net_weight": 20},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, receiveResp.StatusCode)
	receiveResp.Body.Close()
	require.Equal(t, "120", currentStock(t, env, berasID))

	// Cook with more than we have: balance goes negative, no error.
	produceResp := do(t, env.server, "POST", "/v1/productions",
		jsonBody(t, map[string]any{
			"menu_id":        uuid.NewString(),
			"total_portions": 400,
			"items":          []map[string]any{{"ingredient_id": berasID, "qty_used": 150}},
		}), env.token)
	require.Equal(t, http.StatusCreated, produceResp.StatusCode)
	produceResp.Body.Close()
	require.Equal(t, "-30", currentStock(t, env, berasID))

	// The ledger shows the full chained history.
	movResp := do(t, env.server, "GET", "/v1/ingredients/"+berasID+"/movements", nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movements struct {
		Data []struct {
			Type          string      `json:"type"`
			BalanceBefore string `json:"balance_before"`
			BalanceAfter  string `json:"balance_after"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, movResp, &movements)
	require.EqualValues(t, 3, movements.Total)

	// Newest first: OUT, IN, ADJUST.
	assert.Equal(t, "OUT", movements.Data[0].Type)
	assert.Equal(t, "120", movements.Data[0].BalanceBefore)
	assert.Equal(t, "-30", movements.Data[0].BalanceAfter)
	assert.Equal(t, "IN", movements.Data[1].Type)
	assert.Equal(t, "100", movements.Data[1].BalanceBefore)
	assert.Equal(t, "120", movements.Data[1].BalanceAfter)
}

// Two productions drawing 10 kg each from a 15 kg balance must serialize on
// the ingredient row lock: the final balance is exactly -5 and the two ledger
// entries chain without overlap.
func TestE2E_ConcurrentProductionsSerialize(t *testing.T) {
	env := setupTestEnv(t)

	ayamID := createIngredient(t, env, "Ayam", 5)
	adjustStock(t, env, ayamID, 15, "opening stock")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, "POST", "/v1/productions",
				jsonBody(t, map[string]any{
					"menu_id":        uuid.NewString(),
					"total_portions": 50,
					"items":          []map[string]any{{"ingredient_id": ayamID, "qty_used": 10}},
				}), env.token)
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			resp.Body.Close()
		}()
	}
	wg.Wait()

	require.Equal(t, "-5", currentStock(t, env, ayamID))

	movResp := do(t, env.server, "GET", "/v1/ingredients/"+ayamID+"/movements?type=OUT", nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movements struct {
		Data []struct {
			BalanceBefore string `json:"balance_before"`
			BalanceAfter  string `json:"balance_after"`
		} `json:"data"`
	}
	decodeJSON(t, movResp, &movements)
	require.Len(t, movements.Data, 2)

	// One saw 15 → 5, the other 5 → -5 — never both starting from 15.
	befores := []string{movements.Data[0].BalanceBefore, movements.Data[1].BalanceBefore}
	assert.ElementsMatch(t, []string{"15", "5"}, befores)
}

// A purchase that has been received is frozen: amending it returns a conflict
// and leaves the stored items untouched.
func TestE2E_AmendReceivedPurchaseRefused(t *testing.T) {
	env := setupTestEnv(t)

	gulaID := createIngredient(t, env, "Gula", 2)

	purchaseResp := do(t, env.server, "POST", "/v1/purchases",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"ingredient_id": gulaID, "estimated_qty": 5}},
		}), env.token)
	require.Equal(t, http.StatusCreated, purchaseResp.StatusCode)
	var purchase struct {
		ID string `json:"id"`
	}
	decodeJSON(t, purchaseResp, &purchase)

	receiveResp := do(t, env.server, "POST", "/v1/receipts",
		jsonBody(t, map[string]any{
			"purchase_id": purchase.ID,
			"items": []map[string]any{
				{"ingredient_id": gulaID, "gross_weight": 5, "net_weight": 5},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, receiveResp.StatusCode)
	receiveResp.Body.Close()

	amendResp := do(t, env.server, "PUT", "/v1/purchases/"+purchase.ID,
		jsonBody(t, map[string]any{
			"note":  "too late",
			"items": []map[string]any{{"ingredient_id": gulaID, "estimated_qty": 50}},
		}), env.token)
	assert.Equal(t, http.StatusConflict, amendResp.StatusCode)
	amendResp.Body.Close()

	// Stock unchanged by the refused amendment.
	require.Equal(t, "5", currentStock(t, env, gulaID))
}

// A receive that fails partway through must leave nothing behind: the first
// item's credit has already run inside the transaction when the second item
// blows up, and the rollback has to take the receipt row, the ledger entry
// and the stock update with it.
func TestE2E_FailedReceiveRollsBackCompletely(t *testing.T) {
	env := setupTestEnv(t)

	tempeID := createIngredient(t, env, "Tempe", 5)
	adjustStock(t, env, tempeID, 30, "opening stock")

	purchaseResp := do(t, env.server, "POST", "/v1/purchases",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"ingredient_id": tempeID, "estimated_qty": 20}},
		}), env.token)
	require.Equal(t, http.StatusCreated, purchaseResp.StatusCode)
	var purchase struct {
		ID string `json:"id"`
	}
	decodeJSON(t, purchaseResp, &purchase)

	assertNothingPersisted := func() {
		t.Helper()
		require.Equal(t, "30", currentStock(t, env, tempeID))

		movResp := do(t, env.server, "GET", "/v1/ingredients/"+tempeID+"/movements", nil, env.token)
		require.Equal(t, http.StatusOK, movResp.StatusCode)
		var movements struct {
			Total int64 `json:"total"`
		}
		decodeJSON(t, movResp, &movements)
		// Only the opening adjustment.
		require.EqualValues(t, 1, movements.Total)

		listResp := do(t, env.server, "GET", "/v1/receipts", nil, env.token)
		require.Equal(t, http.StatusOK, listResp.StatusCode)
		var receipts struct {
			Total int64 `json:"total"`
		}
		decodeJSON(t, listResp, &receipts)
		require.EqualValues(t, 0, receipts.Total)

		getResp := do(t, env.server, "GET", "/v1/purchases/"+purchase.ID, nil, env.token)
		require.Equal(t, http.StatusOK, getResp.StatusCode)
		var p struct {
			Status string `json:"status"`
		}
		decodeJSON(t, getResp, &p)
		require.Equal(t, "waiting", p.Status)
	}

	// The first item credits 20 kg before the negative second item is refused.
	badWeight := do(t, env.server, "POST", "/v1/receipts",
		jsonBody(t, map[string]any{
			"purchase_id": purchase.ID,
			"items": []map[string]any{
				{"ingredient_id": tempeID, "gross_weight": 20.6, "net_weight": 20},
				{"ingredient_id": tempeID, "gross_weight": 1, "net_weight": -1},
			},
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, badWeight.StatusCode)
	badWeight.Body.Close()
	assertNothingPersisted()

	// Same receipt against an ingredient that does not exist.
	badIngredient := do(t, env.server, "POST", "/v1/receipts",
		jsonBody(t, map[string]any{
			"purchase_id": purchase.ID,
			"items": []map[string]any{
				{"ingredient_id": tempeID, "gross_weight": 20.6, "net_weight": 20},
				{"ingredient_id": uuid.NewString(), "gross_weight": 3, "net_weight": 3},
			},
		}), env.token)
	assert.GreaterOrEqual(t, badIngredient.StatusCode, http.StatusBadRequest)
	badIngredient.Body.Close()
	assertNothingPersisted()
}
