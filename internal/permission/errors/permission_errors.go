package permissionerrors

import "go-hr-admin/internal/shared/apperror"

var (
	ErrInvalidDescription = apperror.Validation("Descrição inválida!")
	ErrUpdateFailed       = apperror.NotFound("Não foi possível atualizar permissão!")
	ErrDeleteFailed       = apperror.NotFound("Não foi possível excluir permissão!")
)
