package role

import "go-hr-admin/internal/shared/query"

type SaveRequest struct {
	Role *RoleInput `json:"cargo" binding:"required"`
}

type RoleInput struct {
	ID          *int64  `json:"id"`
	Description *string `json:"descricao" validate:"omitempty,max=240"`
}

type SearchCriteria struct {
	query.ListParams
	Description *string
}
