package employee

import (
	"time"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/permission"
)

const (
	TableName     = "funcionarios"
	ResourceName  = "funcionarios"
	AggregateType = "funcionario"
)

// PublicColumns is the projection used by every read; it never includes senha.
var PublicColumns = []string{
	TableName + ".id",
	TableName + ".nome",
	TableName + ".email",
	TableName + ".nascimento",
	TableName + ".sexo",
	TableName + ".foto",
	TableName + ".desativado",
}

type Employee struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:nome" json:"nome"`
	Email       string     `gorm:"column:email" json:"email"`
	BirthDate   *time.Time `gorm:"column:nascimento;type:date" json:"nascimento"`
	Password    string     `gorm:"column:senha" json:"-"`
	Sex         *string    `gorm:"column:sexo" json:"sexo"`
	Photo       *string    `gorm:"column:foto" json:"foto"`
	Deactivated int        `gorm:"column:desativado" json:"desativado"`

	Permissions []permission.Permission `gorm:"many2many:funcionarios_permissoes;joinForeignKey:funcionario;joinReferences:permissao" json:"permissoes"`

	auditlog.Trail `gorm:"-"`
}

func (Employee) TableName() string {
	return TableName
}

func (e *Employee) EntityID() int64 {
	return e.ID
}
