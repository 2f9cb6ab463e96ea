package auth

// Account is the login view of an employee row. Password is never serialised.
type Account struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:nome" json:"nome"`
	Email       string `gorm:"column:email" json:"email"`
	Password    string `gorm:"column:senha" json:"-"`
	Deactivated int    `gorm:"column:desativado" json:"desativado"`
}

func (Account) TableName() string {
	return "funcionarios"
}
