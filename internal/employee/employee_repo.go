package employee

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/permission"
	"go-hr-admin/internal/shared/dateutil"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, criteria SearchCriteria) ([]Employee, int64, error)
	FindOne(ctx context.Context, criteria SearchCriteria) (*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindActiveByID(ctx context.Context, id int64) (*Employee, error)
	EmailInUse(ctx context.Context, email string, exceptID int64) (bool, error)
	Create(ctx context.Context, e *Employee) error
	Save(ctx context.Context, e *Employee) (int64, error)
	Deactivate(ctx context.Context, id int64) (int64, error)
	CountActivePermissions(ctx context.Context, ids []int64) (int64, error)
	ReplacePermissions(ctx context.Context, id int64, permissionIDs []int64) error
}

type employeePermission struct {
	Employee   int64 `gorm:"column:funcionario;primaryKey"`
	Permission int64 `gorm:"column:permissao;primaryKey"`
}

func (employeePermission) TableName() string {
	return "funcionarios_permissoes"
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// filtered builds the WHERE part shared by the page query and its count.
func (r *repository) filtered(ctx context.Context, criteria SearchCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(query.Active(TableName))

	if criteria.ID != 0 {
		q = q.Where(TableName+".id = ?", criteria.ID)
	}

	if criteria.Search != nil {
		term := *criteria.Search
		group := r.db.Session(&gorm.Session{NewDB: true}).
			Where("LOWER("+TableName+".nome) LIKE ?", query.Pattern(term)).
			Or("LOWER("+TableName+".email) LIKE ?", query.Pattern(term))
		if iso, ok := dateutil.BRToISO(term); ok {
			group = group.Or("CAST("+TableName+".nascimento AS TEXT) LIKE ?", "%"+iso+"%")
		}
		q = q.Where(group)
	}

	if criteria.BirthDate != nil {
		if iso, ok := dateutil.BRToISO(*criteria.BirthDate); ok {
			q = q.Where("CAST("+TableName+".nascimento AS TEXT) LIKE ?", "%"+iso+"%")
		}
	}

	if criteria.Name != nil {
		q = q.Scopes(query.Contains(TableName+".nome", *criteria.Name))
	}

	if criteria.Email != nil {
		q = q.Where(TableName+".email = ?", *criteria.Email)
	}

	return q
}

func activePermissions(db *gorm.DB) *gorm.DB {
	return db.Scopes(query.Active(permission.TableName))
}

func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]Employee, int64, error) {
	var results []Employee
	err := r.filtered(ctx, criteria).
		Select(PublicColumns).
		Preload("Permissions", activePermissions).
		Scopes(auditlog.InsertionOrder(TableName), query.Paginate(criteria.ListParams)).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.filtered(ctx, criteria).Distinct(TableName + ".id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := auditlog.Attach(ctx, r.db, TableName, results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// FindOne applies the same filters as Search but returns the first match, or
// nil when nothing matches.
func (r *repository) FindOne(ctx context.Context, criteria SearchCriteria) (*Employee, error) {
	var e Employee
	err := r.filtered(ctx, criteria).
		Select(PublicColumns).
		Preload("Permissions", activePermissions).
		Order(TableName + ".id ASC").
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Employee{e}
	if err := auditlog.Attach(ctx, r.db, TableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// FindByID loads the full row, password hash included, whatever its state.
func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(query.Active(TableName)).
		Where("id = ?", id).
		Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) EmailInUse(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(query.Active(TableName)).
		Where("LOWER(email) = LOWER(?)", email).
		Where("id <> ?", exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *repository) Save(ctx context.Context, e *Employee) (int64, error) {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(e)
	return res.RowsAffected, res.Error
}

func (r *repository) Deactivate(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ? AND desativado = ?", id, 0).
		Update("desativado", 1)
	return res.RowsAffected, res.Error
}

func (r *repository) CountActivePermissions(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&permission.Permission{}).
		Scopes(query.Active(permission.TableName)).
		Where("id IN ?", ids).
		Count(&n).Error
	return n, err
}

func (r *repository) ReplacePermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("funcionario = ?", id).Delete(&employeePermission{}).Error; err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	rows := make([]employeePermission, len(permissionIDs))
	for i, pid := range permissionIDs {
		rows[i] = employeePermission{Employee: id, Permission: pid}
	}
	return db.Create(&rows).Error
}
