package domain

// EnforceRequest asks whether an employee may perform action on resource.
type EnforceRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
