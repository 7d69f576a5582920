package acquisition

import (
	"time"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

type CreateAcquisitionPeriodRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	StartDate  string `json:"start_date" validate:"required,date"`
	// Year defaults to the start date's year.
	Year int `json:"year" validate:"omitempty,gte=1900,lte=9999"`
}

func (r *CreateAcquisitionPeriodRequest) Validate() error {
	return validator.Struct(r)
}

type ListAcquisitionPeriodsRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	Status     *Status `json:"status" validate:"-"`
}

func (r *ListAcquisitionPeriodsRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	if r.Status != nil && !r.Status.Valid() {
		errs.Add("status", "status must be one of: open, used, closed")
	}
	return errs.Err()
}

type AcquisitionPeriodResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Year        int       `json:"year"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewAcquisitionPeriodResponse(p AcquisitionPeriod, statusLabel string) AcquisitionPeriodResponse {
	return AcquisitionPeriodResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		StartDate:   calendar.Format(p.StartDate),
		EndDate:     calendar.Format(p.EndDate),
		Year:        p.Year,
		Status:      string(p.Status),
		StatusLabel: statusLabel,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
