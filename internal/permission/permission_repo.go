package permission

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/shared/optioncache"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=permission_repo.go -destination=mock/permission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, criteria SearchCriteria) ([]Permission, int64, error)
	FindOne(ctx context.Context, id int64) (*Permission, error)
	FindByID(ctx context.Context, id int64) (*Permission, error)
	FindActiveByID(ctx context.Context, id int64) (*Permission, error)
	Create(ctx context.Context, p *Permission) error
	Save(ctx context.Context, p *Permission) (int64, error)
	Deactivate(ctx context.Context, id int64) (int64, error)
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
	q := r.db.WithContext(ctx).
		Model(&Permission{}).
		Scopes(query.Active(TableName))
	if criteria.Search != nil {
		q = q.Scopes(query.Contains(TableName+".permissao", *criteria.Search))
	}
	return q
}

func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]Permission, int64, error) {
	var results []Permission
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

// FindOne returns the active permission with id, or nil.
func (r *repository) FindOne(ctx context.Context, id int64) (*Permission, error) {
	var p Permission
	err := r.db.WithContext(ctx).
		Scopes(query.Active(TableName)).
		Where(TableName+".id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Permission{p}
	if err := auditlog.Attach(ctx, r.db, TableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Permission, error) {
	var p Permission
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id int64) (*Permission, error) {
	var p Permission
	err := r.db.WithContext(ctx).
		Scopes(query.Active(TableName)).
		Where("id = ?", id).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Save(ctx context.Context, p *Permission) (int64, error) {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(p)
	return res.RowsAffected, res.Error
}

func (r *repository) Deactivate(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Permission{}).
		Where("id = ? AND desativado = ?", id, 0).
		Update("desativado", 1)
	return res.RowsAffected, res.Error
}

func (r *repository) Options(ctx context.Context) ([]optioncache.Option, error) {
	var opts []optioncache.Option
	err := r.db.WithContext(ctx).
		Model(&Permission{}).
		Select("id, permissao AS description").
		Scopes(query.Active(TableName)).
		Order("permissao ASC").
		Scan(&opts).Error
	return opts, err
}
