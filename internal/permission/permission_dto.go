package permission

import "go-hr-admin/internal/shared/query"

type SaveRequest struct {
	Permission *PermissionInput `json:"permissao" binding:"required"`
}

// PermissionInput holds the fields a client may set; nil means "keep".
type PermissionInput struct {
	ID          *int64  `json:"id"`
	Description *string `json:"permissao" validate:"omitempty,max=240"`
}

type SearchCriteria struct {
	query.ListParams
}
