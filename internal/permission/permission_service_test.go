package permission_test

import (
	"context"
	"errors"
	"testing"

	"go-hr-admin/internal/auditlog"
	auditMock "go-hr-admin/internal/auditlog/mock"
	"go-hr-admin/internal/permission"
	permissionerrors "go-hr-admin/internal/permission/errors"
	permissionMock "go-hr-admin/internal/permission/mock"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/optioncache"
	"go-hr-admin/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   permission.Service
	repo      *permissionMock.MockRepository
	audit     *auditMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock := testdb.NewMock(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := permissionMock.NewMockRepository(ctrl)
	audit := auditMock.NewMockRepository(ctrl)
	cache := optioncache.New(rdb, permission.OptionsKey, optioncache.DefaultTTL)

	return &serviceDeps{
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   permission.NewService(db, repo, audit, cache),
		repo:      repo,
		audit:     audit,
	}
}

func (d *serviceDeps) expectTxRepos() {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.audit.EXPECT().WithTx(gomock.Any()).Return(d.audit)
}

func ptr[T any](v T) *T { return &v }

func TestService_SaveCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *permission.Permission) error {
				assert.Equal(t, "feedbacks", p.Description)
				p.ID = 9
				return nil
			})
		deps.audit.EXPECT().Record(ctx, permission.TableName, auditlog.ActionInsert, int64(9)).Return(nil)
		deps.redisMock.ExpectDel(permission.OptionsKey).SetVal(1)

		saved, err := deps.service.Save(ctx, permission.PermissionInput{Description: ptr("  feedbacks ")})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.EqualValues(t, 9, saved.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("zero id inserts", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *permission.Permission) error {
				p.ID = 10
				return nil
			})
		deps.audit.EXPECT().Record(ctx, permission.TableName, auditlog.ActionInsert, int64(10)).Return(nil)
		deps.redisMock.ExpectDel(permission.OptionsKey).SetVal(1)

		saved, err := deps.service.Save(ctx, permission.PermissionInput{ID: ptr(int64(0)), Description: ptr("cargos")})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.EqualValues(t, 10, saved.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blank description", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.expectTxRepos()

		saved, err := deps.service.Save(ctx, permission.PermissionInput{Description: ptr("   ")})

		assert.Nil(t, saved)
		assert.ErrorIs(t, err, permissionerrors.ErrInvalidDescription)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("description too long", func(t *testing.T) {
		deps := setupServiceTest(t)
		long := make([]byte, 241)
		for i := range long {
			long[i] = 'a'
		}

		_, err := deps.service.Save(ctx, permission.PermissionInput{Description: ptr(string(long))})

		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.EqualError(t, err, "Permissao is invalid")
	})
}

func TestService_SaveUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges over stored row", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(&permission.Permission{ID: 3, Description: "old"}, nil)
		deps.repo.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *permission.Permission) (int64, error) {
				assert.Equal(t, "new", p.Description)
				return 1, nil
			})
		deps.audit.EXPECT().Record(ctx, permission.TableName, auditlog.ActionUpdate, int64(3)).Return(nil)
		deps.redisMock.ExpectDel(permission.OptionsKey).SetVal(1)

		saved, err := deps.service.Save(ctx, permission.PermissionInput{ID: ptr(int64(3)), Description: ptr("new")})

		require.NoError(t, err)
		assert.Equal(t, "new", saved.Description)
	})

	t.Run("nothing written", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(&permission.Permission{ID: 3, Description: "old"}, nil)
		deps.repo.EXPECT().Save(ctx, gomock.Any()).Return(int64(0), nil)
		deps.redisMock.ExpectDel(permission.OptionsKey).SetVal(0)

		saved, err := deps.service.Save(ctx, permission.PermissionInput{ID: ptr(int64(3))})

		require.NoError(t, err)
		assert.Nil(t, saved)
	})

	t.Run("missing row", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.expectTxRepos()

		deps.repo.EXPECT().FindByID(ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Save(ctx, permission.PermissionInput{ID: ptr(int64(404)), Description: ptr("x")})

		assert.ErrorIs(t, err, permissionerrors.ErrUpdateFailed)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestService_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().FindActiveByID(ctx, int64(4)).Return(&permission.Permission{ID: 4}, nil)
		deps.repo.EXPECT().Deactivate(ctx, int64(4)).Return(int64(1), nil)
		deps.audit.EXPECT().Record(ctx, permission.TableName, auditlog.ActionDelete, int64(4)).Return(nil)
		deps.redisMock.ExpectDel(permission.OptionsKey).SetVal(1)

		require.NoError(t, deps.service.SoftDelete(ctx, 4))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already deactivated", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().FindActiveByID(ctx, int64(4)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.SoftDelete(ctx, 4)

		assert.ErrorIs(t, err, permissionerrors.ErrDeleteFailed)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("lost race", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().FindActiveByID(ctx, int64(4)).Return(&permission.Permission{ID: 4}, nil)
		deps.repo.EXPECT().Deactivate(ctx, int64(4)).Return(int64(0), nil)

		assert.ErrorIs(t, deps.service.SoftDelete(ctx, 4), permissionerrors.ErrDeleteFailed)
	})
}

func TestService_Options(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.redisMock.ExpectGet(permission.OptionsKey).RedisNil()
	deps.repo.EXPECT().Options(ctx).Return(nil, errors.New("db down"))

	_, err := deps.service.Options(ctx)

	assert.EqualError(t, err, "db down")
}
