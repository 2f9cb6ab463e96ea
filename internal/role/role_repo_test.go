package role_test

import (
	"context"
	"testing"
	"time"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/role"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRoles(t *testing.T, db *gorm.DB, descriptions ...string) []role.Role {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]role.Role, len(descriptions))
	for i, d := range descriptions {
		rows[i] = role.Role{Description: d}
		require.NoError(t, db.Create(&rows[i]).Error)
		require.NoError(t, db.Create(&auditlog.Entry{
			Reference: rows[i].ID,
			Table:     role.TableName,
			Action:    auditlog.ActionInsert,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
	return rows
}

func TestRepository_Search(t *testing.T) {
	db := testdb.Open(t)
	repo := role.NewRepository(db)
	seedRoles(t, db, "Gerente", "Vendedor", "Caixa", "Gerente de loja")
	ctx := context.Background()

	t.Run("all in insertion order", func(t *testing.T) {
		results, total, err := repo.Search(ctx, role.SearchCriteria{})

		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		require.Len(t, results, 4)
		assert.Equal(t, "Gerente", results[0].Description)
		assert.Equal(t, "Gerente de loja", results[3].Description)
	})

	t.Run("description filter with pagination", func(t *testing.T) {
		desc := "gerente"
		limit := 1
		results, total, err := repo.Search(ctx, role.SearchCriteria{
			ListParams:  query.ListParams{Limit: &limit, Page: 2},
			Description: &desc,
		})

		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, results, 1)
		assert.Equal(t, "Gerente de loja", results[0].Description)
	})
}

func TestRepository_DeleteAndUsage(t *testing.T) {
	db := testdb.Open(t)
	repo := role.NewRepository(db)
	rows := seedRoles(t, db, "Gerente", "Vendedor")
	ctx := context.Background()

	require.NoError(t, db.Exec("INSERT INTO funcionarios (nome, email) VALUES ('Ana', 'ana@empresa.com')").Error)
	require.NoError(t, db.Exec("INSERT INTO filiais (nome) VALUES ('Centro')").Error)
	require.NoError(t, db.Exec("INSERT INTO filiais_funcionarios (funcionario, cargo, filial) VALUES (1, ?, 1)", rows[0].ID).Error)

	inUse, err := repo.InUse(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.InUse(ctx, rows[1].ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	affected, err := repo.Delete(ctx, rows[1].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	found, err := repo.FindOne(ctx, rows[1].ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	opts, err := repo.Options(ctx)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Gerente", opts[0].Description)
}
