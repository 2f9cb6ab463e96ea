package feedback

import "go-hr-admin/internal/shared/query"

type SaveRequest struct {
	Feedback *FeedbackInput `json:"feedback" binding:"required"`
}

// FeedbackInput: a zero filial clears the branch.
type FeedbackInput struct {
	ID          *int64  `json:"id"`
	EmployeeID  *int64  `json:"funcionario" validate:"omitempty,gt=0"`
	BranchID    *int64  `json:"filial" validate:"omitempty,gte=0"`
	Description *string `json:"descricao" validate:"omitempty,max=5000"`
}

type SearchCriteria struct {
	query.ListParams
	EmployeeID int64
	BranchID   int64
}
