package employee

import (
	"context"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/service/compensation"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// GetHourlyRate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetHourlyRate(ctx context.Context, id string) (employee.Employee, employee.HourlyRate, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, employee.HourlyRate{}, err
	}
	return emp, compensation.EmployeeHourlyRate(emp), nil
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)
