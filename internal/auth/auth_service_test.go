package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hr-admin/internal/auth"
	autherrors "go-hr-admin/internal/auth/errors"
	authMock "go-hr-admin/internal/auth/mock"
	"go-hr-admin/internal/config"
	"go-hr-admin/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakePolicies struct {
	loaded []int64
	err    error
}

func (f *fakePolicies) LoadEmployeePolicy(employeeID int64) error {
	f.loaded = append(f.loaded, employeeID)
	return f.err
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := authMock.NewMockRepository(ctrl)
		policies := &fakePolicies{}
		issuer := newIssuer()
		svc := auth.NewService(repo, issuer, policies)

		repo.EXPECT().FindActiveByEmail(ctx, "ana@rh.com").Return(&auth.Account{
			ID: 7, Name: "Ana", Email: "ana@rh.com", Password: hashed(t, "segredo"),
		}, nil)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: " ana@rh.com ", Password: "segredo"})

		require.NoError(t, err)
		assert.Equal(t, []int64{7}, policies.loaded)
		assert.Empty(t, resp.Employee.Password)
		assert.Equal(t, "Ana", resp.Employee.Name)

		id, err := issuer.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := authMock.NewMockRepository(ctrl)
		policies := &fakePolicies{}
		svc := auth.NewService(repo, newIssuer(), policies)

		repo.EXPECT().FindActiveByEmail(ctx, "ana@rh.com").Return(&auth.Account{
			ID: 7, Password: hashed(t, "segredo"),
		}, nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@rh.com", Password: "errada"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		assert.Empty(t, policies.loaded)
	})

	t.Run("unknown or deactivated employee", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := authMock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, newIssuer(), &fakePolicies{})

		repo.EXPECT().FindActiveByEmail(ctx, "x@rh.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "x@rh.com", Password: "segredo"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("policy load failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := authMock.NewMockRepository(ctrl)
		boom := errors.New("db down")
		svc := auth.NewService(repo, newIssuer(), &fakePolicies{err: boom})

		repo.EXPECT().FindActiveByEmail(ctx, "ana@rh.com").Return(&auth.Account{
			ID: 7, Password: hashed(t, "segredo"),
		}, nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@rh.com", Password: "segredo"})

		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Me(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(repo, newIssuer(), &fakePolicies{})

	repo.EXPECT().FindActiveByID(ctx, int64(7)).Return(&auth.Account{ID: 7, Password: "hash"}, nil)
	account, err := svc.Me(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, account.Password)

	repo.EXPECT().FindActiveByID(ctx, int64(8)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Me(ctx, 8)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
