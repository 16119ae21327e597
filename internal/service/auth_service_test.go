package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teapos/internal/config"
	"teapos/internal/dto"
	"teapos/internal/model"
	"teapos/internal/repository"
	"teapos/internal/service"
)

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

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildAuthSvc() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedUser(t *testing.T, svc service.AuthService, username, password, role string) *dto.UserResponse {
	t.Helper()
	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: username,
		Name:     "Test User",
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, _ := buildAuthSvc()
	seedUser(t, svc, "owner", "correct-horse", "owner")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "owner", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "owner", resp.User.Role)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "owner", claims["username"])
	assert.Equal(t, "owner", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc()
	seedUser(t, svc, "owner", "correct-horse", "owner")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "owner", Password: "battery-staple"})
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := buildAuthSvc()
	seedUser(t, svc, "owner", "correct-horse", "owner")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "owner", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorContains(t, err, "refresh token invalid or expired")
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, _ := buildAuthSvc()
	created := seedUser(t, svc, "cashier", "correct-horse", "cashier")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(context.Background(), mustID(t, created.ID)))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorContains(t, err, "user not found or inactive")
}

func TestDeactivateHidesUserFromList(t *testing.T) {
	svc, _ := buildAuthSvc()
	created := seedUser(t, svc, "cashier", "correct-horse", "cashier")
	seedUser(t, svc, "owner", "correct-horse", "owner")

	require.NoError(t, svc.DeactivateUser(context.Background(), mustID(t, created.ID)))

	active, err := svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.ReactivateUser(context.Background(), mustID(t, created.ID)))
	active, err = svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
