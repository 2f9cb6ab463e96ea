package employeeerrors

import "go-hr-admin/internal/shared/apperror"

var (
	ErrUpdateFailed      = apperror.NotFound("Não foi possível atualizar funcionario!")
	ErrDeleteFailed      = apperror.NotFound("Não foi possível excluir funcionario!")
	ErrEmployeeNotFound  = apperror.NotFound("Funcionário não encontrado!")
	ErrEmailTaken        = apperror.Conflict("E-mail já cadastrado!")
	ErrInvalidBirthDate  = apperror.Validation("Data de nascimento inválida!")
	ErrUnknownPermission = apperror.Validation("Permissão inválida!")
)
