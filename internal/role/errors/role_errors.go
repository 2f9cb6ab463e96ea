package roleerrors

import "go-hr-admin/internal/shared/apperror"

var (
	ErrInvalidDescription = apperror.Validation("Descrição inválida!")
	ErrUpdateFailed       = apperror.NotFound("Não foi possível atualizar cargo!")
	ErrDeleteFailed       = apperror.NotFound("Não foi possível excluir cargo!")
	ErrRoleInUse          = apperror.Conflict("Cargo vinculado a funcionários!")
	ErrDuplicateRole      = apperror.Conflict("Cargo já cadastrado!")
)
