package branch_test

import (
	"context"
	"testing"

	"go-hr-admin/internal/auditlog"
	auditMock "go-hr-admin/internal/auditlog/mock"
	"go-hr-admin/internal/branch"
	brancherrors "go-hr-admin/internal/branch/errors"
	branchMock "go-hr-admin/internal/branch/mock"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock     sqlmock.Sqlmock
	service     branch.Service
	assignments branch.AssignmentService
	repo        *branchMock.MockRepository
	assignRepo  *branchMock.MockAssignmentRepository
	audit       *auditMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock := testdb.NewMock(t)
	repo := branchMock.NewMockRepository(ctrl)
	assignRepo := branchMock.NewMockAssignmentRepository(ctrl)
	audit := auditMock.NewMockRepository(ctrl)

	return &serviceDeps{
		sqlMock:     sqlMock,
		service:     branch.NewService(db, repo, audit),
		assignments: branch.NewAssignmentService(db, assignRepo, audit),
		repo:        repo,
		assignRepo:  assignRepo,
		audit:       audit,
	}
}

func ptr[T any](v T) *T { return &v }

func TestService_SaveBranch(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	testdb.ExpectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

	deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&branch.Branch{ID: 1, Name: "Centro"}, nil)
	deps.repo.EXPECT().Save(ctx, &branch.Branch{ID: 1, Name: "Centro Sul"}).Return(int64(1), nil)
	deps.audit.EXPECT().Record(ctx, branch.TableName, auditlog.ActionUpdate, int64(1)).Return(nil)

	saved, err := deps.service.Save(ctx, branch.BranchInput{ID: ptr(int64(1)), Name: ptr("Centro Sul ")})

	require.NoError(t, err)
	assert.Equal(t, "Centro Sul", saved.Name)
}

func TestService_DeleteBranchInUse(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	testdb.ExpectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

	deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&branch.Branch{ID: 1}, nil)
	deps.repo.EXPECT().InUse(ctx, int64(1)).Return(true, nil)

	err := deps.service.Delete(ctx, 1)

	assert.ErrorIs(t, err, brancherrors.ErrBranchInUse)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestAssignmentService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		deps.assignRepo.EXPECT().EmployeeActive(ctx, int64(1)).Return(true, nil)
		deps.assignRepo.EXPECT().RoleExists(ctx, int64(2)).Return(true, nil)
		deps.assignRepo.EXPECT().BranchExists(ctx, int64(3)).Return(true, nil)
		deps.assignRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *branch.Assignment) error {
				a.ID = 10
				return nil
			})
		deps.audit.EXPECT().Record(ctx, branch.AssignmentTableName, auditlog.ActionInsert, int64(10)).Return(nil)
		deps.assignRepo.EXPECT().FindOne(ctx, int64(10)).Return(&branch.Assignment{ID: 10, EmployeeID: 1, RoleID: 2, BranchID: 3}, nil)

		a, err := deps.assignments.Save(ctx, branch.AssignmentInput{
			EmployeeID: ptr(int64(1)), RoleID: ptr(int64(2)), BranchID: ptr(int64(3)),
		})

		require.NoError(t, err)
		assert.EqualValues(t, 10, a.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("all references are required", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		_, err := deps.assignments.Save(ctx, branch.AssignmentInput{EmployeeID: ptr(int64(1)), RoleID: ptr(int64(2))})

		assert.EqualError(t, err, "Filial is required")
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		deps.assignRepo.EXPECT().FindByID(ctx, int64(10)).Return(&branch.Assignment{ID: 10}, nil)
		deps.assignRepo.EXPECT().RoleExists(ctx, int64(99)).Return(false, nil)

		_, err := deps.assignments.Save(ctx, branch.AssignmentInput{ID: ptr(int64(10)), RoleID: ptr(int64(99))})

		assert.ErrorIs(t, err, brancherrors.ErrUnknownRole)
	})

	t.Run("deactivated employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		deps.assignRepo.EXPECT().EmployeeActive(ctx, int64(1)).Return(false, nil)

		_, err := deps.assignments.Save(ctx, branch.AssignmentInput{
			EmployeeID: ptr(int64(1)), RoleID: ptr(int64(2)), BranchID: ptr(int64(3)),
		})

		assert.ErrorIs(t, err, brancherrors.ErrUnknownEmployee)
	})

	t.Run("update missing row", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		deps.assignRepo.EXPECT().FindByID(ctx, int64(10)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.assignments.Save(ctx, branch.AssignmentInput{ID: ptr(int64(10))})

		assert.ErrorIs(t, err, brancherrors.ErrAssignmentUpdateFailed)
	})
}

func TestAssignmentService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	testdb.ExpectTx(t, deps.sqlMock, false)
	deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)

	deps.assignRepo.EXPECT().Delete(ctx, int64(10)).Return(int64(0), nil)

	assert.ErrorIs(t, deps.assignments.Delete(ctx, 10), brancherrors.ErrAssignmentDeleteFailed)
}

func TestAssignmentService_RemoveEmployeeAssignments(t *testing.T) {
	ctx := context.Background()

	t.Run("audits every removed row", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)

		deps.assignRepo.EXPECT().IDsByEmployee(ctx, int64(4)).Return([]int64{7, 8}, nil)
		deps.assignRepo.EXPECT().DeleteByEmployee(ctx, int64(4)).Return(int64(2), nil)
		deps.audit.EXPECT().Record(ctx, branch.AssignmentTableName, auditlog.ActionDelete, int64(7)).Return(nil)
		deps.audit.EXPECT().Record(ctx, branch.AssignmentTableName, auditlog.ActionDelete, int64(8)).Return(nil)

		removed, err := deps.assignments.RemoveEmployeeAssignments(ctx, 4)

		require.NoError(t, err)
		assert.EqualValues(t, 2, removed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("nothing to remove", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.assignRepo.EXPECT().WithTx(gomock.Any()).Return(deps.assignRepo)

		deps.assignRepo.EXPECT().IDsByEmployee(ctx, int64(4)).Return(nil, nil)

		removed, err := deps.assignments.RemoveEmployeeAssignments(ctx, 4)

		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}
