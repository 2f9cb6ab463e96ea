package events

import "time"

const EmployeeLifecycleTopic = "rh.funcionario.lifecycle.v1"

const (
	EmployeeCreated     = "employee_created"
	EmployeeUpdated     = "employee_updated"
	EmployeeDeactivated = "employee_deactivated"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int64     `json:"employee_id"`
	ActorID    *int64    `json:"actor_id,omitempty"`
	Name       string    `json:"nome"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
