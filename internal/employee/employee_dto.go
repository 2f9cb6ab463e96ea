package employee

import "go-hr-admin/internal/shared/query"

type SaveRequest struct {
	Employee *EmployeeInput `json:"funcionario" binding:"required"`
}

// EmployeeInput carries the writable fields; a nil field keeps the stored value.
// Nascimento accepts DD/MM/YYYY or YYYY-MM-DD.
type EmployeeInput struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"nome" validate:"omitempty,max=240"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	BirthDate *string `json:"nascimento"`
	Password  *string `json:"senha" validate:"omitempty,min=6,max=72"`
	Sex       *string `json:"sexo" validate:"omitempty,oneof=m f"`
	Photo     *string `json:"foto"`
}

type SetPermissionsRequest struct {
	Permissions []int64 `json:"permissoes"`
}

// SearchCriteria adds the employee field filters to the common list params.
// BirthDate is only applied when it parses as DD/MM/YYYY.
type SearchCriteria struct {
	query.ListParams
	Name      *string
	Email     *string
	BirthDate *string
}

// IdentifiesOne reports whether the criteria select a single record.
func (c SearchCriteria) IdentifiesOne() bool {
	return c.ID != 0 || c.Email != nil
}
