package feedback

import (
	"time"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/branch"
)

const (
	TableName    = "feedbacks"
	ResourceName = "feedbacks"
)

type Feedback struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	EmployeeID  int64     `gorm:"column:funcionario" json:"funcionario"`
	BranchID    *int64    `gorm:"column:filial" json:"filial"`
	Description string    `gorm:"column:descricao" json:"descricao"`
	CreatedAt   time.Time `gorm:"column:criacao" json:"criacao"`

	Employee *auditlog.Actor `gorm:"foreignKey:EmployeeID;references:ID" json:"funcionario_feedback,omitempty"`
	Branch   *branch.Branch  `gorm:"foreignKey:BranchID;references:ID" json:"filial_feedback,omitempty"`

	auditlog.Trail `gorm:"-"`
}

func (Feedback) TableName() string {
	return TableName
}

func (f *Feedback) EntityID() int64 {
	return f.ID
}
