package auditlog

import (
	"context"
	"time"

	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auditlog_repo.go -destination=mock/auditlog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Record(ctx context.Context, table, action string, reference int64) error
	List(ctx context.Context, filter ListFilter) ([]Entry, int64, error)
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

// Record writes an entry attributed to the employee authenticated on ctx, if any.
func (r *repository) Record(ctx context.Context, table, action string, reference int64) error {
	entry := Entry{
		Reference:  reference,
		Table:      table,
		Action:     action,
		EmployeeID: contextutil.GetEmployeeID(ctx),
		CreatedAt:  time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Entry, int64, error) {
	base := r.db.WithContext(ctx).Model(&Entry{})
	if filter.Table != "" {
		base = base.Where("tabela = ?", filter.Table)
	}
	if filter.Reference != 0 {
		base = base.Where("referencia = ?", filter.Reference)
	}
	if filter.Params.ID != 0 {
		base = base.Where("id = ?", filter.Params.ID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []Entry
	err := base.
		Preload("Actor", selectActor).
		Scopes(query.Paginate(filter.Params)).
		Order("criacao DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, total, err
}

func selectActor(db *gorm.DB) *gorm.DB {
	return db.Select(ActorColumns)
}
