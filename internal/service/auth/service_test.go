package auth

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeenhealth/clinic-api/internal/model"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
	"github.com/moeenhealth/clinic-api/pkg/security"
)

type fakeStaffRepo struct {
	byEmail map[string]*model.StaffUser
}

func (f *fakeStaffRepo) Create(ctx context.Context, u *model.StaffUser) error { return nil }
func (f *fakeStaffRepo) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("failed to get staff user: %w", sql.ErrNoRows)
	}
	return u, nil
}

func newTestService(t *testing.T, users ...*model.StaffUser) *Service {
	t.Helper()
	repo := &fakeStaffRepo{byEmail: map[string]*model.StaffUser{}}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return NewService(repo, security.NewBcryptHasher(4), Config{
		Secret:      "test-secret",
		ExpiryHours: 1,
	})
}

func staffUser(t *testing.T, email, password, status string) *model.StaffUser {
	t.Helper()
	hash, err := security.NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)
	return &model.StaffUser{
		Base:         model.Base{ID: uuid.New()},
		Email:        email,
		Name:         "Test Admin",
		PasswordHash: hash,
		Role:         "admin",
		Status:       status,
	}
}

func TestLogin(t *testing.T) {
	user := staffUser(t, "admin@clinic.test", "correct-horse", "active")
	svc := newTestService(t, user)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, staffUser(t, "admin@clinic.test", "correct-horse", "active"))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@clinic.test",
		Password: "wrong-horse",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "whatever123",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLogin_SuspendedAccount(t *testing.T) {
	svc := newTestService(t, staffUser(t, "admin@clinic.test", "correct-horse", "suspended"))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@clinic.test",
		Password: "correct-horse",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	user := staffUser(t, "admin@clinic.test", "correct-horse", "active")
	svc := newTestService(t, user)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := staffUser(t, "admin@clinic.test", "correct-horse", "active")
	issuer := newTestService(t, user)

	resp, err := issuer.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	verifier := NewService(&fakeStaffRepo{}, security.NewBcryptHasher(4), Config{
		Secret:      "different-secret",
		ExpiryHours: 1,
	})

	_, err = verifier.ValidateToken(context.Background(), resp.AccessToken)
	assert.Error(t, err)
}
