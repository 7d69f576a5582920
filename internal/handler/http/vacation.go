package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type vacationHandlerImpl struct {
	vacationService vacation.VacationService
}

func NewVacationHandler(vacationService vacation.VacationService) VacationHandler {
	return &vacationHandlerImpl{vacationService: vacationService}
}

func (h *vacationHandlerImpl) respond(r *http.Request, e vacation.VacationEntry) vacation.VacationEntryResponse {
	return vacation.NewVacationEntryResponse(e, statusLabel(r, string(e.Status)))
}

// Create implements VacationHandler.
func (h *vacationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req vacation.CreateVacationEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.vacationService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Vacation entry created successfully", h.respond(r, entry))
}

// Preview implements VacationHandler.
func (h *vacationHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req vacation.PreviewVacationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	calc, err := h.vacationService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, vacation.NewCalculationResponse(calc))
}

// List implements VacationHandler.
func (h *vacationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.vacationService.List(r.Context(), vacation.ListVacationEntriesRequest{
		CompanyID:  r.URL.Query().Get("company_id"),
		EmployeeID: optionalString(r, "employee_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := make([]vacation.VacationEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, h.respond(r, e))
	}
	response.SuccessWithMeta(w, data, &response.Meta{TotalItems: len(data)})
}

// Get implements VacationHandler.
func (h *vacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.vacationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.respond(r, entry))
}

// UpdateStatus implements VacationHandler.
func (h *vacationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req vacation.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	entry, err := h.vacationService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Vacation status updated successfully", h.respond(r, entry))
}

// Delete implements VacationHandler. The acquisition period is released.
func (h *vacationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vacationService.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.NoContent(w)
}
