package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetHourlyRate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// GetHourlyRate implements EmployeeHandler.
func (h *employeeHandlerImpl) GetHourlyRate(w http.ResponseWriter, r *http.Request) {
	emp, rate, err := h.employeeService.GetHourlyRate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.NewHourlyRateResponse(emp, rate))
}
