package service_test

import (
	"context"
	"testing"

	"github.com/ezazee/dapur-gempita-sub000/internal/config"
	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory UserRepository stub ────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var result []model.User
	for _, u := range r.users {
		if !includeInactive && !u.Active {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUser(repo *stubUserRepo, username, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	repo.users[u.ID] = u
	return u
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	seedUser(repo, "chef", "rahasia99", model.RoleChef)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chef", Password: "rahasia99"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RoleChef, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	seedUser(repo, "chef", "rahasia99", model.RoleChef)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chef", Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	u := seedUser(repo, "chef", "rahasia99", model.RoleChef)
	u.Active = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chef", Password: "rahasia99"})
	assert.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	seedUser(repo, "admin", "admin1234", model.RoleSuperAdmin)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin1234"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := service.NewAuthService(newStubUserRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestDeactivateThenReactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	u := seedUser(repo, "pembeli", "belanja123", model.RolePembeli)

	require.NoError(t, svc.DeactivateUser(context.Background(), u.ID))
	assert.False(t, repo.users[u.ID].Active)

	require.NoError(t, svc.ReactivateUser(context.Background(), u.ID))
	assert.True(t, repo.users[u.ID].Active)
}
