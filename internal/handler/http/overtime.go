package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

func (h *overtimeHandlerImpl) respond(r *http.Request, e overtime.OvertimeEntry) overtime.OvertimeEntryResponse {
	return overtime.NewOvertimeEntryResponse(e, statusLabel(r, string(e.Status)))
}

func (h *overtimeHandlerImpl) respondAll(r *http.Request, entries []overtime.OvertimeEntry) []overtime.OvertimeEntryResponse {
	data := make([]overtime.OvertimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, h.respond(r, e))
	}
	return data
}

// Create implements OvertimeHandler. Months whose total is zero are not stored.
func (h *overtimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateOvertimeEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entries, err := h.overtimeService.CreateEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Overtime entries created successfully", h.respondAll(r, entries))
}

// Preview implements OvertimeHandler.
func (h *overtimeHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req overtime.PreviewOvertimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	previews, err := h.overtimeService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := make([]overtime.MonthPreviewResponse, 0, len(previews))
	for _, p := range previews {
		data = append(data, overtime.NewMonthPreviewResponse(p))
	}
	response.Success(w, data)
}

// List implements OvertimeHandler.
func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := optionalInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.overtimeService.List(r.Context(), overtime.ListOvertimeEntriesRequest{
		CompanyID:  r.URL.Query().Get("company_id"),
		EmployeeID: optionalString(r, "employee_id"),
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := h.respondAll(r, entries)
	response.SuccessWithMeta(w, data, &response.Meta{TotalItems: len(data)})
}

// Get implements OvertimeHandler.
func (h *overtimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.overtimeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.respond(r, entry))
}

// Update implements OvertimeHandler.
func (h *overtimeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req overtime.UpdateOvertimeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	entry, err := h.overtimeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime entry updated successfully", h.respond(r, entry))
}

// Delete implements OvertimeHandler.
func (h *overtimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.NoContent(w)
}
