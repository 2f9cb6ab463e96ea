package branch

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, criteria SearchCriteria) ([]Branch, int64, error)
	FindOne(ctx context.Context, id int64) (*Branch, error)
	FindByID(ctx context.Context, id int64) (*Branch, error)
	Create(ctx context.Context, b *Branch) error
	Save(ctx context.Context, b *Branch) (int64, error)
	InUse(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (int64, error)
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
	q := r.db.WithContext(ctx).Model(&Branch{})
	if criteria.Search != nil {
		q = q.Scopes(query.Contains(TableName+".nome", *criteria.Search))
	}
	if criteria.Name != nil {
		q = q.Scopes(query.Contains(TableName+".nome", *criteria.Name))
	}
	return q
}

func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]Branch, int64, error) {
	var results []Branch
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

func (r *repository) FindOne(ctx context.Context, id int64) (*Branch, error) {
	b, err := r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Branch{*b}
	if err := auditlog.Attach(ctx, r.db, TableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Branch, error) {
	var b Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Create(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Save(ctx context.Context, b *Branch) (int64, error) {
	res := r.db.WithContext(ctx).Save(b)
	return res.RowsAffected, res.Error
}

// InUse reports whether assignments or feedbacks still point at the branch.
func (r *repository) InUse(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table(AssignmentTableName).Where("filial = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Table("feedbacks").Where("filial = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Branch{})
	return res.RowsAffected, res.Error
}
