package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BudgetPeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
}

type budgetPeriodHandlerImpl struct {
	budgetService budget.BudgetPeriodService
}

func NewBudgetPeriodHandler(budgetService budget.BudgetPeriodService) BudgetPeriodHandler {
	return &budgetPeriodHandlerImpl{budgetService: budgetService}
}

func (h *budgetPeriodHandlerImpl) respond(r *http.Request, p budget.BudgetPeriod) budget.BudgetPeriodResponse {
	return budget.NewBudgetPeriodResponse(p, statusLabel(r, string(p.Status)))
}

// Create implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req budget.CreateBudgetPeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	period, err := h.budgetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Budget period created successfully", h.respond(r, period))
}

// List implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	periods, err := h.budgetService.List(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := make([]budget.BudgetPeriodResponse, 0, len(periods))
	for _, p := range periods {
		data = append(data, h.respond(r, p))
	}
	response.SuccessWithMeta(w, data, &response.Meta{TotalItems: len(data)})
}

// GetActive implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	period, err := h.budgetService.GetActive(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.respond(r, period))
}

// Get implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	period, err := h.budgetService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.respond(r, period))
}

// Update implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req budget.UpdateBudgetPeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	period, err := h.budgetService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Budget period updated successfully", h.respond(r, period))
}

// Close implements BudgetPeriodHandler. The closing user is taken from the token.
func (h *budgetPeriodHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.HandleError(w, middleware.ErrInvalidToken)
		return
	}

	period, err := h.budgetService.Close(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Budget period closed successfully", h.respond(r, period))
}

// Reopen implements BudgetPeriodHandler.
func (h *budgetPeriodHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	period, err := h.budgetService.Reopen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Budget period reopened successfully", h.respond(r, period))
}
