package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	// PermissionDescriptions lists the active permissions of an active employee.
	PermissionDescriptions(employeeID int64) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PermissionDescriptions(employeeID int64) ([]string, error) {
	var result []string

	err := r.db.
		Table("funcionarios_permissoes").
		Joins("JOIN permissoes ON permissoes.id = funcionarios_permissoes.permissao").
		Joins("JOIN funcionarios ON funcionarios.id = funcionarios_permissoes.funcionario").
		Where("funcionarios_permissoes.funcionario = ?", employeeID).
		Where("permissoes.desativado = 0 AND funcionarios.desativado = 0").
		Order("permissoes.permissao").
		Pluck("permissoes.permissao", &result).Error

	return result, err
}
