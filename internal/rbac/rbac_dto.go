package rbac

// CheckRequest asks whether the authenticated employee may perform Action on Resource.
type CheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=read write"`
}

type PermissionsResponse struct {
	Permissions []string `json:"permissoes"`
}
