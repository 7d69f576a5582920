package employee

import "context"

// EmployeeRepository reads employees owned by the masters-data application.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}
