package auditlog

import "go-hr-admin/internal/shared/query"

type ListFilter struct {
	Table     string
	Reference int64
	Params    query.ListParams
}
