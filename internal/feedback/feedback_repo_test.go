package feedback_test

import (
	"context"
	"testing"
	"time"

	"go-hr-admin/internal/feedback"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Search(t *testing.T) {
	db := testdb.Open(t)
	repo := feedback.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec("INSERT INTO funcionarios (id, nome, email, senha) VALUES (1, 'Ana', 'ana@empresa.com', 'hash')").Error)
	require.NoError(t, db.Exec("INSERT INTO funcionarios (id, nome, email, senha, desativado) VALUES (2, 'Bruno', 'bruno@empresa.com', 'hash', 1)").Error)
	require.NoError(t, db.Exec("INSERT INTO filiais (id, nome) VALUES (1, 'Centro')").Error)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	branchID := int64(1)
	rows := []feedback.Feedback{
		{EmployeeID: 1, Description: "Pontual", CreatedAt: base},
		{EmployeeID: 1, BranchID: &branchID, Description: "Ótimo atendimento", CreatedAt: base.Add(time.Hour)},
		{EmployeeID: 2, Description: "Desligado", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	t.Run("newest first without deactivated employees", func(t *testing.T) {
		results, total, err := repo.Search(ctx, feedback.SearchCriteria{})

		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, results, 2)
		assert.Equal(t, "Ótimo atendimento", results[0].Description)
		require.NotNil(t, results[0].Branch)
		assert.Equal(t, "Centro", results[0].Branch.Name)
		require.NotNil(t, results[0].Employee)
		assert.Equal(t, "Ana", results[0].Employee.Name)
		assert.Nil(t, results[1].Branch)
	})

	t.Run("branch filter", func(t *testing.T) {
		results, total, err := repo.Search(ctx, feedback.SearchCriteria{BranchID: 1})

		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, results, 1)
	})

	t.Run("free text", func(t *testing.T) {
		term := "pontu"
		limit := 5
		results, _, err := repo.Search(ctx, feedback.SearchCriteria{ListParams: query.ListParams{Search: &term, Limit: &limit}})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, rows[0].ID, results[0].ID)
	})

	t.Run("references", func(t *testing.T) {
		ok, err := repo.EmployeeActive(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.BranchExists(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		affected, err := repo.Delete(ctx, rows[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		found, err := repo.FindOne(ctx, rows[0].ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
