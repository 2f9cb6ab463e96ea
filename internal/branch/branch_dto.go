package branch

import "go-hr-admin/internal/shared/query"

type SaveRequest struct {
	Branch *BranchInput `json:"filial" binding:"required"`
}

type BranchInput struct {
	ID   *int64  `json:"id"`
	Name *string `json:"nome" validate:"omitempty,max=240"`
}

type SearchCriteria struct {
	query.ListParams
	Name *string
}

type SaveAssignmentRequest struct {
	Assignment *AssignmentInput `json:"filial_funcionario" binding:"required"`
}

// AssignmentInput references must all be present on create.
type AssignmentInput struct {
	ID         *int64 `json:"id"`
	EmployeeID *int64 `json:"funcionario" validate:"omitempty,gt=0"`
	RoleID     *int64 `json:"cargo" validate:"omitempty,gt=0"`
	BranchID   *int64 `json:"filial" validate:"omitempty,gt=0"`
}

// AssignmentCriteria filters are ignored when zero.
type AssignmentCriteria struct {
	query.ListParams
	BranchID   int64
	EmployeeID int64
	RoleID     int64
}
