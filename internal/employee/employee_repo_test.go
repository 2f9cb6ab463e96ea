package employee_test

import (
	"context"
	"testing"
	"time"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/permission"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// seedEmployees inserts rows whose insert log runs backwards from their ids.
func seedEmployees(t *testing.T, db *gorm.DB, rows ...employee.Employee) []employee.Employee {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range rows {
		if rows[i].Password == "" {
			rows[i].Password = "hash"
		}
		require.NoError(t, db.Create(&rows[i]).Error)
		require.NoError(t, db.Create(&auditlog.Entry{
			Reference: rows[i].ID,
			Table:     employee.TableName,
			Action:    auditlog.ActionInsert,
			CreatedAt: base.Add(time.Duration(len(rows)-i) * time.Minute),
		}).Error)
	}
	return rows
}

func seedStaff(t *testing.T, db *gorm.DB) []employee.Employee {
	return seedEmployees(t, db,
		employee.Employee{Name: "Ana Souza", Email: "ana@empresa.com", BirthDate: date(1990, 3, 15)},
		employee.Employee{Name: "Bruno Lima", Email: "bruno@empresa.com", BirthDate: date(1985, 7, 2)},
		employee.Employee{Name: "Carla Dias", Email: "carla@empresa.com", BirthDate: date(1990, 3, 16)},
		employee.Employee{Name: "Daniel Rocha", Email: "daniel@empresa.com", Deactivated: 1},
	)
}

func TestRepository_Search(t *testing.T) {
	db := testdb.Open(t)
	repo := employee.NewRepository(db)
	seedStaff(t, db)
	ctx := context.Background()

	t.Run("active only in insertion order without passwords", func(t *testing.T) {
		results, total, err := repo.Search(ctx, employee.SearchCriteria{})

		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, results, 3)
		assert.Equal(t, "Carla Dias", results[0].Name)
		assert.Equal(t, "Bruno Lima", results[1].Name)
		assert.Equal(t, "Ana Souza", results[2].Name)
		for _, e := range results {
			assert.Empty(t, e.Password)
			assert.NotNil(t, e.Inserted)
		}
	})

	t.Run("free text matches name or email", func(t *testing.T) {
		term := "BRUNO"
		results, total, err := repo.Search(ctx, employee.SearchCriteria{ListParams: query.ListParams{Search: &term}})

		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "bruno@empresa.com", results[0].Email)
	})

	t.Run("free text matches a br birth date", func(t *testing.T) {
		term := "15/03/1990"
		results, total, err := repo.Search(ctx, employee.SearchCriteria{ListParams: query.ListParams{Search: &term}})

		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "Ana Souza", results[0].Name)
	})

	t.Run("free text that is not a date matches by name", func(t *testing.T) {
		term := "dias"
		results, total, err := repo.Search(ctx, employee.SearchCriteria{ListParams: query.ListParams{Search: &term}})

		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "Carla Dias", results[0].Name)
	})

	t.Run("free text that is not a date ignores birth dates", func(t *testing.T) {
		for _, term := range []string{"1990", "1990-03-15", "31/02/1990", "not-a-date"} {
			results, total, err := repo.Search(ctx, employee.SearchCriteria{ListParams: query.ListParams{Search: &term}})

			require.NoError(t, err, term)
			assert.Zero(t, total, term)
			assert.Empty(t, results, term)
		}
	})

	t.Run("birth date filter", func(t *testing.T) {
		birth := "16/03/1990"
		results, _, err := repo.Search(ctx, employee.SearchCriteria{BirthDate: &birth})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Carla Dias", results[0].Name)
	})

	t.Run("invalid birth date filter is ignored", func(t *testing.T) {
		birth := "not-a-date"
		_, total, err := repo.Search(ctx, employee.SearchCriteria{BirthDate: &birth})

		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})

	t.Run("name filter", func(t *testing.T) {
		name := "dias"
		results, _, err := repo.Search(ctx, employee.SearchCriteria{Name: &name})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Carla Dias", results[0].Name)
	})

	t.Run("pagination keeps the full total", func(t *testing.T) {
		limit := 2
		results, total, err := repo.Search(ctx, employee.SearchCriteria{ListParams: query.ListParams{Limit: &limit, Page: 2}})

		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, results, 1)
		assert.Equal(t, "Ana Souza", results[0].Name)
	})
}

func TestRepository_FindOne(t *testing.T) {
	db := testdb.Open(t)
	repo := employee.NewRepository(db)
	rows := seedStaff(t, db)
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		e, err := repo.FindOne(ctx, employee.SearchCriteria{ListParams: query.ListParams{ID: rows[1].ID}})

		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "Bruno Lima", e.Name)
		assert.Empty(t, e.Password)
		assert.NotNil(t, e.Inserted)
	})

	t.Run("by exact email", func(t *testing.T) {
		email := "carla@empresa.com"
		e, err := repo.FindOne(ctx, employee.SearchCriteria{Email: &email})

		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, rows[2].ID, e.ID)
	})

	t.Run("partial email does not match", func(t *testing.T) {
		email := "carla"
		e, err := repo.FindOne(ctx, employee.SearchCriteria{Email: &email})

		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("deactivated is absent", func(t *testing.T) {
		e, err := repo.FindOne(ctx, employee.SearchCriteria{ListParams: query.ListParams{ID: rows[3].ID}})

		require.NoError(t, err)
		assert.Nil(t, e)
	})
}

func TestRepository_Permissions(t *testing.T) {
	db := testdb.Open(t)
	repo := employee.NewRepository(db)
	rows := seedStaff(t, db)
	ctx := context.Background()

	perms := []permission.Permission{{Description: "funcionarios"}, {Description: "cargos"}, {Description: "antiga", Deactivated: 1}}
	require.NoError(t, db.Create(&perms).Error)

	n, err := repo.CountActivePermissions(ctx, []int64{perms[0].ID, perms[1].ID, perms[2].ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, repo.ReplacePermissions(ctx, rows[0].ID, []int64{perms[0].ID, perms[2].ID}))
	require.NoError(t, repo.ReplacePermissions(ctx, rows[0].ID, []int64{perms[0].ID, perms[1].ID, perms[2].ID}))

	e, err := repo.FindOne(ctx, employee.SearchCriteria{ListParams: query.ListParams{ID: rows[0].ID}})
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Len(t, e.Permissions, 2, "deactivated permissions are not loaded")

	require.NoError(t, repo.ReplacePermissions(ctx, rows[0].ID, nil))
	e, err = repo.FindOne(ctx, employee.SearchCriteria{ListParams: query.ListParams{ID: rows[0].ID}})
	require.NoError(t, err)
	assert.Empty(t, e.Permissions)
}

func TestRepository_Writes(t *testing.T) {
	db := testdb.Open(t)
	repo := employee.NewRepository(db)
	rows := seedStaff(t, db)
	ctx := context.Background()

	t.Run("email in use ignores case and the excepted id", func(t *testing.T) {
		taken, err := repo.EmailInUse(ctx, "ANA@empresa.com", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.EmailInUse(ctx, "ana@empresa.com", rows[0].ID)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = repo.EmailInUse(ctx, "daniel@empresa.com", 0)
		require.NoError(t, err)
		assert.False(t, taken, "deactivated employees free their email")
	})

	t.Run("save keeps the stored password", func(t *testing.T) {
		current, err := repo.FindByID(ctx, rows[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "hash", current.Password)

		current.Name = "Bruno L."
		affected, err := repo.Save(ctx, current)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		var stored employee.Employee
		require.NoError(t, db.Where("id = ?", rows[1].ID).Take(&stored).Error)
		assert.Equal(t, "Bruno L.", stored.Name)
		assert.Equal(t, "hash", stored.Password)
	})

	t.Run("deactivate once", func(t *testing.T) {
		affected, err := repo.Deactivate(ctx, rows[2].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		affected, err = repo.Deactivate(ctx, rows[2].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)

		_, err = repo.FindActiveByID(ctx, rows[2].ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
