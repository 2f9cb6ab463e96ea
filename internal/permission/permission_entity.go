package permission

import "go-hr-admin/internal/auditlog"

const (
	TableName    = "permissoes"
	ResourceName = "permissoes"
	OptionsKey   = "permissoes:options"

	// AdminPermission grants every resource and action.
	AdminPermission = "admin"
)

type Permission struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:permissao" json:"permissao"`
	Deactivated int    `gorm:"column:desativado" json:"desativado"`

	auditlog.Trail `gorm:"-"`
}

func (Permission) TableName() string {
	return TableName
}

func (p *Permission) EntityID() int64 {
	return p.ID
}
