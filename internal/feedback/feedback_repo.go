package feedback

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/branch"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=feedback_repo.go -destination=mock/feedback_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, criteria SearchCriteria) ([]Feedback, int64, error)
	FindOne(ctx context.Context, id int64) (*Feedback, error)
	FindByID(ctx context.Context, id int64) (*Feedback, error)
	Create(ctx context.Context, f *Feedback) error
	Save(ctx context.Context, f *Feedback) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	EmployeeActive(ctx context.Context, id int64) (bool, error)
	BranchExists(ctx context.Context, id int64) (bool, error)
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
		Model(&Feedback{}).
		Joins("JOIN funcionarios ON funcionarios.id = " + TableName + ".funcionario").
		Scopes(query.Active("funcionarios"))

	if criteria.ID != 0 {
		q = q.Where(TableName+".id = ?", criteria.ID)
	}
	if criteria.EmployeeID != 0 {
		q = q.Where(TableName+".funcionario = ?", criteria.EmployeeID)
	}
	if criteria.BranchID != 0 {
		q = q.Where(TableName+".filial = ?", criteria.BranchID)
	}
	if criteria.Search != nil {
		pattern := query.Pattern(*criteria.Search)
		q = q.Where(r.db.Session(&gorm.Session{NewDB: true}).
			Where("LOWER("+TableName+".descricao) LIKE ?", pattern).
			Or("LOWER(funcionarios.nome) LIKE ?", pattern))
	}
	return q
}

func withReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Employee", func(db *gorm.DB) *gorm.DB { return db.Select(auditlog.ActorColumns) }).
		Preload("Branch")
}

// Search lists feedbacks newest first.
func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]Feedback, int64, error) {
	var results []Feedback
	err := r.filtered(ctx, criteria).
		Select(TableName + ".*").
		Scopes(withReferences, query.Paginate(criteria.ListParams)).
		Order(TableName + ".criacao DESC").
		Order(TableName + ".id DESC").
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

func (r *repository) FindOne(ctx context.Context, id int64) (*Feedback, error) {
	var f Feedback
	err := r.db.WithContext(ctx).
		Scopes(withReferences).
		Where(TableName+".id = ?", id).
		Take(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Feedback{f}
	if err := auditlog.Attach(ctx, r.db, TableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Feedback, error) {
	var f Feedback
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Create(ctx context.Context, f *Feedback) error {
	return r.db.WithContext(ctx).Omit("Employee", "Branch").Create(f).Error
}

func (r *repository) Save(ctx context.Context, f *Feedback) (int64, error) {
	res := r.db.WithContext(ctx).Omit("Employee", "Branch").Save(f)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Feedback{})
	return res.RowsAffected, res.Error
}

func (r *repository) EmployeeActive(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("funcionarios").
		Scopes(query.Active("funcionarios")).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) BranchExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(branch.TableName).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
