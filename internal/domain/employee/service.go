package employee

import "context"

type EmployeeService interface {
	Get(ctx context.Context, id string) (Employee, error)
	GetHourlyRate(ctx context.Context, id string) (Employee, HourlyRate, error)
}
