package auditlog

import "time"

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ActorColumns is the password-free projection of the acting employee.
var ActorColumns = []string{"id", "nome", "email", "nascimento", "desativado"}

type Entry struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	Reference  int64     `gorm:"column:referencia" json:"referencia"`
	Table      string    `gorm:"column:tabela" json:"tabela"`
	Action     string    `gorm:"column:acao" json:"acao"`
	EmployeeID *int64    `gorm:"column:funcionario" json:"funcionario"`
	CreatedAt  time.Time `gorm:"column:criacao" json:"criacao"`

	Actor *Actor `gorm:"foreignKey:EmployeeID;references:ID" json:"funcionario_log,omitempty"`
}

func (Entry) TableName() string {
	return "system_logs"
}

type Actor struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:nome" json:"nome"`
	Email       string     `gorm:"column:email" json:"email"`
	BirthDate   *time.Time `gorm:"column:nascimento;type:date" json:"nascimento"`
	Deactivated int        `gorm:"column:desativado" json:"desativado"`
}

func (Actor) TableName() string {
	return "funcionarios"
}

// Trail is who created an entity and who touched it last. Entities embed it
// to expose both entries in their JSON.
type Trail struct {
	Inserted *Entry `json:"inserted,omitempty"`
	Updated  *Entry `json:"updated,omitempty"`
}

func (t *Trail) SetTrail(v Trail) {
	*t = v
}

// Trailed is implemented by entities that embed Trail.
type Trailed interface {
	EntityID() int64
	SetTrail(Trail)
}

// ResourceName is the authorization resource guarding the audit log.
const ResourceName = "logs"
