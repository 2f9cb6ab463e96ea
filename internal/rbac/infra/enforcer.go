package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// AdminRole is the permission description that grants every resource and action.
const AdminRole = "admin"

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// NewEnforcer builds an in-memory enforcer where a permission description
// named after a resource grants every action on it, "<resource>:read" grants
// reading only and AdminRole grants everything. Employees are attached to
// descriptions with grouping policies at runtime.
func NewEnforcer(resources []string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	rules := [][]string{{AdminRole, "*", "*"}}
	for _, resource := range resources {
		rules = append(rules,
			[]string{resource, resource, "*"},
			[]string{resource + ":read", resource, "read"},
		)
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, err
	}
	return e, nil
}
