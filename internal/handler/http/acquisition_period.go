package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AcquisitionPeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
}

type acquisitionPeriodHandlerImpl struct {
	acquisitionService acquisition.AcquisitionPeriodService
}

func NewAcquisitionPeriodHandler(acquisitionService acquisition.AcquisitionPeriodService) AcquisitionPeriodHandler {
	return &acquisitionPeriodHandlerImpl{acquisitionService: acquisitionService}
}

func (h *acquisitionPeriodHandlerImpl) respond(r *http.Request, p acquisition.AcquisitionPeriod) acquisition.AcquisitionPeriodResponse {
	return acquisition.NewAcquisitionPeriodResponse(p, statusLabel(r, string(p.Status)))
}

// Create implements AcquisitionPeriodHandler.
func (h *acquisitionPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req acquisition.CreateAcquisitionPeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	period, err := h.acquisitionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Acquisition period created successfully", h.respond(r, period))
}

// List implements AcquisitionPeriodHandler.
func (h *acquisitionPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := acquisition.ListAcquisitionPeriodsRequest{EmployeeID: r.URL.Query().Get("employee_id")}
	if status := optionalString(r, "status"); status != nil {
		s := acquisition.Status(*status)
		req.Status = &s
	}

	periods, err := h.acquisitionService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := make([]acquisition.AcquisitionPeriodResponse, 0, len(periods))
	for _, p := range periods {
		data = append(data, h.respond(r, p))
	}
	response.SuccessWithMeta(w, data, &response.Meta{TotalItems: len(data)})
}

// Get implements AcquisitionPeriodHandler.
func (h *acquisitionPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	period, err := h.acquisitionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.respond(r, period))
}

// Close implements AcquisitionPeriodHandler.
func (h *acquisitionPeriodHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	period, err := h.acquisitionService.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Acquisition period closed successfully", h.respond(r, period))
}

// Reopen implements AcquisitionPeriodHandler.
func (h *acquisitionPeriodHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	period, err := h.acquisitionService.Reopen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Acquisition period reopened successfully", h.respond(r, period))
}
