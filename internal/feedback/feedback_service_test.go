package feedback_test

import (
	"context"
	"testing"

	"go-hr-admin/internal/auditlog"
	auditMock "go-hr-admin/internal/auditlog/mock"
	"go-hr-admin/internal/feedback"
	feedbackerrors "go-hr-admin/internal/feedback/errors"
	feedbackMock "go-hr-admin/internal/feedback/mock"
	"go-hr-admin/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service feedback.Service
	repo    *feedbackMock.MockRepository
	audit   *auditMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock := testdb.NewMock(t)
	repo := feedbackMock.NewMockRepository(ctrl)
	audit := auditMock.NewMockRepository(ctrl)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: feedback.NewService(db, repo, audit),
		repo:    repo,
		audit:   audit,
	}
}

func (d *serviceDeps) expectTxRepos() {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.audit.EXPECT().WithTx(gomock.Any()).Return(d.audit)
}

func ptr[T any](v T) *T { return &v }

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().EmployeeActive(ctx, int64(1)).Return(true, nil)
		deps.repo.EXPECT().BranchExists(ctx, int64(2)).Return(true, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, f *feedback.Feedback) error {
				assert.Equal(t, "Pontual", f.Description)
				require.NotNil(t, f.BranchID)
				assert.EqualValues(t, 2, *f.BranchID)
				assert.False(t, f.CreatedAt.IsZero())
				f.ID = 6
				return nil
			})
		deps.audit.EXPECT().Record(ctx, feedback.TableName, auditlog.ActionInsert, int64(6)).Return(nil)
		deps.repo.EXPECT().FindOne(ctx, int64(6)).Return(&feedback.Feedback{ID: 6}, nil)

		saved, err := deps.service.Save(ctx, feedback.FeedbackInput{
			EmployeeID: ptr(int64(1)), BranchID: ptr(int64(2)), Description: ptr(" Pontual "),
		})

		require.NoError(t, err)
		assert.EqualValues(t, 6, saved.ID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)
		deps.expectTxRepos()

		deps.repo.EXPECT().EmployeeActive(ctx, int64(1)).Return(false, nil)

		_, err := deps.service.Save(ctx, feedback.FeedbackInput{EmployeeID: ptr(int64(1)), Description: ptr("x")})

		assert.ErrorIs(t, err, feedbackerrors.ErrUnknownEmployee)
	})

	t.Run("zero branch clears it", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)
		deps.expectTxRepos()

		deps.repo.EXPECT().FindByID(ctx, int64(6)).Return(&feedback.Feedback{ID: 6, BranchID: ptr(int64(2))}, nil)
		deps.repo.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, f *feedback.Feedback) (int64, error) {
				assert.Nil(t, f.BranchID)
				return 0, nil
			})

		saved, err := deps.service.Save(ctx, feedback.FeedbackInput{ID: ptr(int64(6)), BranchID: ptr(int64(0))})

		require.NoError(t, err)
		assert.Nil(t, saved)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	testdb.ExpectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

	deps.repo.EXPECT().Delete(ctx, int64(6)).Return(int64(0), nil)

	assert.ErrorIs(t, deps.service.Delete(ctx, 6), feedbackerrors.ErrDeleteFailed)
}
