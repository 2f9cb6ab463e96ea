package branch

import (
	"context"
	"errors"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type AssignmentRepository interface {
	WithTx(tx *gorm.DB) AssignmentRepository
	Search(ctx context.Context, criteria AssignmentCriteria) ([]Assignment, int64, error)
	FindOne(ctx context.Context, id int64) (*Assignment, error)
	FindByID(ctx context.Context, id int64) (*Assignment, error)
	Create(ctx context.Context, a *Assignment) error
	Save(ctx context.Context, a *Assignment) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	IDsByEmployee(ctx context.Context, employeeID int64) ([]int64, error)
	DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error)
	EmployeeActive(ctx context.Context, id int64) (bool, error)
	RoleExists(ctx context.Context, id int64) (bool, error)
	BranchExists(ctx context.Context, id int64) (bool, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) WithTx(tx *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: tx}
}

// filtered joins the employee and role so deactivated employees drop out and
// free text can match either of them.
func (r *assignmentRepository) filtered(ctx context.Context, criteria AssignmentCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Joins("JOIN funcionarios ON funcionarios.id = " + AssignmentTableName + ".funcionario").
		Joins("JOIN cargos ON cargos.id = " + AssignmentTableName + ".cargo").
		Scopes(query.Active("funcionarios"))

	if criteria.ID != 0 {
		q = q.Where(AssignmentTableName+".id = ?", criteria.ID)
	}
	if criteria.BranchID != 0 {
		q = q.Where(AssignmentTableName+".filial = ?", criteria.BranchID)
	}
	if criteria.EmployeeID != 0 {
		q = q.Where(AssignmentTableName+".funcionario = ?", criteria.EmployeeID)
	}
	if criteria.RoleID != 0 {
		q = q.Where(AssignmentTableName+".cargo = ?", criteria.RoleID)
	}
	if criteria.Search != nil {
		pattern := query.Pattern(*criteria.Search)
		q = q.Where(r.db.Session(&gorm.Session{NewDB: true}).
			Where("LOWER(funcionarios.nome) LIKE ?", pattern).
			Or("LOWER(funcionarios.email) LIKE ?", pattern).
			Or("LOWER(cargos.descricao) LIKE ?", pattern))
	}
	return q
}

func withReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Employee", func(db *gorm.DB) *gorm.DB { return db.Select(auditlog.ActorColumns) }).
		Preload("Role")
}

func (r *assignmentRepository) Search(ctx context.Context, criteria AssignmentCriteria) ([]Assignment, int64, error) {
	var results []Assignment
	err := r.filtered(ctx, criteria).
		Select(AssignmentTableName + ".*").
		Scopes(withReferences, auditlog.InsertionOrder(AssignmentTableName), query.Paginate(criteria.ListParams)).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.filtered(ctx, criteria).Distinct(AssignmentTableName + ".id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := auditlog.Attach(ctx, r.db, AssignmentTableName, results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *assignmentRepository) FindOne(ctx context.Context, id int64) (*Assignment, error) {
	var a Assignment
	err := r.db.WithContext(ctx).
		Scopes(withReferences).
		Where(AssignmentTableName+".id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []Assignment{a}
	if err := auditlog.Attach(ctx, r.db, AssignmentTableName, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id int64) (*Assignment, error) {
	var a Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) Create(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).Omit("Employee", "Role").Create(a).Error
}

func (r *assignmentRepository) Save(ctx context.Context, a *Assignment) (int64, error) {
	res := r.db.WithContext(ctx).Omit("Employee", "Role").Save(a)
	return res.RowsAffected, res.Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Assignment{})
	return res.RowsAffected, res.Error
}

func (r *assignmentRepository) IDsByEmployee(ctx context.Context, employeeID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Where("funcionario = ?", employeeID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("funcionario = ?", employeeID).Delete(&Assignment{})
	return res.RowsAffected, res.Error
}

func (r *assignmentRepository) EmployeeActive(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Table("funcionarios").Scopes(query.Active("funcionarios")).Where("id = ?", id))
}

func (r *assignmentRepository) RoleExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Table("cargos").Where("id = ?", id))
}

func (r *assignmentRepository) BranchExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Table(TableName).Where("id = ?", id))
}

func exists(q *gorm.DB) (bool, error) {
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}
