package budget

import (
	"time"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

type CreateBudgetPeriodRequest struct {
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	Year        int    `json:"year" validate:"gte=1900,lte=9999"`
	StartDate   string `json:"start_date" validate:"required,date"`
	EndDate     string `json:"end_date" validate:"required,date"`
	Description string `json:"description" validate:"max=255"`
}

func (r *CreateBudgetPeriodRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if !datesOrdered(r.StartDate, r.EndDate) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	return errs.Err()
}

type UpdateBudgetPeriodRequest struct {
	ID          string  `json:"-"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=9999"`
	StartDate   *string `json:"start_date,omitempty" validate:"omitempty,date"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,date"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

func (r *UpdateBudgetPeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	return errs.Err()
}

// Apply merges the requested changes into p and checks the resulting date range.
func (r *UpdateBudgetPeriodRequest) Apply(p BudgetPeriod) (BudgetPeriod, error) {
	if r.Year != nil {
		p.Year = *r.Year
	}
	if r.StartDate != nil {
		start, err := calendar.Parse(*r.StartDate)
		if err != nil {
			return BudgetPeriod{}, err
		}
		p.StartDate = start
	}
	if r.EndDate != nil {
		end, err := calendar.Parse(*r.EndDate)
		if err != nil {
			return BudgetPeriod{}, err
		}
		p.EndDate = end
	}
	if r.Description != nil {
		p.Description = *r.Description
	}

	if p.EndDate.Before(p.StartDate) {
		return BudgetPeriod{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	return p, nil
}

type BudgetPeriodResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Year        int        `json:"year"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	Description string     `json:"description"`
	ClosedBy    *string    `json:"closed_by,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewBudgetPeriodResponse(p BudgetPeriod, statusLabel string) BudgetPeriodResponse {
	return BudgetPeriodResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Year:        p.Year,
		StartDate:   calendar.Format(p.StartDate),
		EndDate:     calendar.Format(p.EndDate),
		Status:      string(p.Status),
		StatusLabel: statusLabel,
		Description: p.Description,
		ClosedBy:    p.ClosedBy,
		ClosedAt:    p.ClosedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func datesOrdered(start, end string) bool {
	s, okStart := validator.IsValidDate(start)
	e, okEnd := validator.IsValidDate(end)
	if !okStart || !okEnd {
		return true
	}
	return !e.Before(s)
}
