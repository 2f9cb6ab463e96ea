package role

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/shared/optioncache"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
)

// assignmentsTable links employees to a role inside a branch.
const assignmentsTable = "filiais_funcionarios"

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, criteria SearchCriteria) ([]Role, int64, error)
	FindOne(ctx context.Context, id int64) (*Role, error)
	FindByID(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, r *Role) error
	Save(ctx context.Context, r *Role) (int64, error)
	InUse(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Options(ctx context.Context) ([]optioncache.Option, error)
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

func (r *repository) filtered(ctx context.Context, criteria SearchCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Role{})
	if criteria.Search != nil {
		q = q.Scopes(query.Contains(TableName+".descricao", *criteria.Search))
	}
	if criteria.Description != nil {
		q = q.Scopes(query.Contains(TableName+".descricao", *criteria.Description))
	}
	return q
}

func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]Role, int64, error) {
	var results []Role
	err := r.filtered(ctx, criteria).
		Select(TableName + ".*").
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

// FindOne returns the role with id, or nil.
func (r *repository) FindOne(ctx context.Context, id int64) (*Role, error) {
	role, err := r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Role{*role}
	if err := auditlog.Attach(ctx, r.db, TableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Role, error) {
	var role Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) Save(ctx context.Context, role *Role) (int64, error) {
	res := r.db.WithContext(ctx).Save(role)
	return res.RowsAffected, res.Error
}

func (r *repository) InUse(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table(assignmentsTable).
		Where("cargo = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Role{})
	return res.RowsAffected, res.Error
}

func (r *repository) Options(ctx context.Context) ([]optioncache.Option, error) {
	var opts []optioncache.Option
	err := r.db.WithContext(ctx).
		Model(&Role{}).
		Select("id, descricao AS description").
		Order("descricao ASC").
		Scan(&opts).Error
	return opts, err
}
