package role

import "go-hr-admin/internal/auditlog"

const (
	TableName    = "cargos"
	ResourceName = "cargos"
	OptionsKey   = "cargos:options"
)

type Role struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:descricao" json:"descricao"`

	auditlog.Trail `gorm:"-"`
}

func (Role) TableName() string {
	return TableName
}

func (r *Role) EntityID() int64 {
	return r.ID
}
