package brancherrors

import "go-hr-admin/internal/shared/apperror"

var (
	ErrInvalidName   = apperror.Validation("Nome inválido!")
	ErrUpdateFailed  = apperror.NotFound("Não foi possível atualizar filial!")
	ErrDeleteFailed  = apperror.NotFound("Não foi possível excluir filial!")
	ErrBranchInUse   = apperror.Conflict("Filial possui funcionários ou feedbacks vinculados!")
	ErrDuplicateName = apperror.Conflict("Filial já cadastrada!")

	ErrAssignmentUpdateFailed = apperror.NotFound("Não foi possível atualizar funcionário da filial!")
	ErrAssignmentDeleteFailed = apperror.NotFound("Não foi possível excluir funcionário da filial!")
	ErrUnknownEmployee        = apperror.Validation("Funcionário inválido!")
	ErrUnknownRole            = apperror.Validation("Cargo inválido!")
	ErrUnknownBranch          = apperror.Validation("Filial inválida!")
)
