package feedbackerrors

import "go-hr-admin/internal/shared/apperror"

var (
	ErrInvalidDescription = apperror.Validation("Descrição inválida!")
	ErrUpdateFailed       = apperror.NotFound("Não foi possível atualizar feedback!")
	ErrDeleteFailed       = apperror.NotFound("Não foi possível excluir feedback!")
	ErrUnknownEmployee    = apperror.Validation("Funcionário inválido!")
	ErrUnknownBranch      = apperror.Validation("Filial inválida!")
)
