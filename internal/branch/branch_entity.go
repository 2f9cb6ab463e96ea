package branch

import (
	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/role"
)

const (
	TableName           = "filiais"
	AssignmentTableName = "filiais_funcionarios"
	ResourceName        = "filiais"
)

type Branch struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:nome" json:"nome"`

	auditlog.Trail `gorm:"-"`
}

func (Branch) TableName() string {
	return TableName
}

func (b *Branch) EntityID() int64 {
	return b.ID
}

// Assignment places an employee in a branch with a role.
type Assignment struct {
	ID         int64 `gorm:"column:id;primaryKey" json:"id"`
	EmployeeID int64 `gorm:"column:funcionario" json:"funcionario"`
	RoleID     int64 `gorm:"column:cargo" json:"cargo"`
	BranchID   int64 `gorm:"column:filial" json:"filial"`

	Employee *auditlog.Actor `gorm:"foreignKey:EmployeeID;references:ID" json:"funcionario_filial,omitempty"`
	Role     *role.Role      `gorm:"foreignKey:RoleID;references:ID" json:"cargo_funcionario,omitempty"`

	auditlog.Trail `gorm:"-"`
}

func (Assignment) TableName() string {
	return AssignmentTableName
}

func (a *Assignment) EntityID() int64 {
	return a.ID
}
