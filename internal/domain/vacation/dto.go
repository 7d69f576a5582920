package vacation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

func validateDays(vacationDays, abonoDays int, errs *validator.ValidationErrors) {
	if vacationDays >= 0 && abonoDays >= 0 && vacationDays+abonoDays > MaxDays {
		errs.Add("abono_days", "vacation_days plus abono_days must not exceed 30")
	}
}

type CreateVacationEntryRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	// An empty AcquisitionPeriodID is a precondition failure, not a validation one.
	AcquisitionPeriodID string          `json:"acquisition_period_id" validate:"omitempty,uuid"`
	VacationDays        int             `json:"vacation_days" validate:"gte=0,lte=30"`
	AbonoDays           int             `json:"abono_days" validate:"gte=0,lte=30"`
	ThirteenthAdvance   bool            `json:"thirteenth_advance"`
	OvertimeAverage     decimal.Decimal `json:"overtime_average" validate:"gte=0"`
	Month               int             `json:"month" validate:"gte=1,lte=12"`
}

func (r *CreateVacationEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	validateDays(r.VacationDays, r.AbonoDays, &errs)
	return errs.Err()
}

type PreviewVacationRequest struct {
	EmployeeID        string          `json:"employee_id" validate:"required,uuid"`
	VacationDays      int             `json:"vacation_days" validate:"gte=0,lte=30"`
	AbonoDays         int             `json:"abono_days" validate:"gte=0,lte=30"`
	ThirteenthAdvance bool            `json:"thirteenth_advance"`
	OvertimeAverage   decimal.Decimal `json:"overtime_average" validate:"gte=0"`
}

func (r *PreviewVacationRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	validateDays(r.VacationDays, r.AbonoDays, &errs)
	return errs.Err()
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status Status `json:"status" validate:"required,oneof=scheduled approved taken"`
}

func (r *UpdateStatusRequest) Validate() error {
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

type ListVacationEntriesRequest struct {
	CompanyID  string  `json:"company_id" validate:"required,uuid"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

func (r *ListVacationEntriesRequest) Validate() error {
	return validator.Struct(r)
}

type CalculationResponse struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	OvertimeAverage    decimal.Decimal `json:"overtime_average"`
	DailyValue         decimal.Decimal `json:"daily_value"`
	VacationValue      decimal.Decimal `json:"vacation_value"`
	OnethirdValue      decimal.Decimal `json:"onethird_value"`
	AbonoValue         decimal.Decimal `json:"abono_value"`
	AbonoOnethirdValue decimal.Decimal `json:"abono_onethird_value"`
	ThirteenthValue    decimal.Decimal `json:"thirteenth_value"`
	TotalValue         decimal.Decimal `json:"total_value"`
}

func NewCalculationResponse(c Calculation) CalculationResponse {
	return CalculationResponse{
		BaseSalary:         c.BaseSalary,
		OvertimeAverage:    c.OvertimeAverage,
		DailyValue:         c.DailyValue,
		VacationValue:      c.VacationValue,
		OnethirdValue:      c.OnethirdValue,
		AbonoValue:         c.AbonoValue,
		AbonoOnethirdValue: c.AbonoOnethirdValue,
		ThirteenthValue:    c.ThirteenthValue,
		TotalValue:         c.Total(),
	}
}

type VacationEntryResponse struct {
	ID                     string  `json:"id"`
	EmployeeID             string  `json:"employee_id"`
	CompanyID              string  `json:"company_id"`
	SectorID               *string `json:"sector_id,omitempty"`
	BudgetPeriodID         string  `json:"budget_period_id"`
	AcquisitionPeriodID    string  `json:"acquisition_period_id"`
	AcquisitionPeriodStart string  `json:"acquisition_period_start"`
	AcquisitionPeriodEnd   string  `json:"acquisition_period_end"`
	Month                  int     `json:"month"`
	Year                   int     `json:"year"`
	VacationDays           int     `json:"vacation_days"`
	AbonoDays              int     `json:"abono_days"`
	ThirteenthAdvance      bool    `json:"thirteenth_advance"`
	CalculationResponse
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewVacationEntryResponse(e VacationEntry, statusLabel string) VacationEntryResponse {
	return VacationEntryResponse{
		ID:                     e.ID,
		EmployeeID:             e.EmployeeID,
		CompanyID:              e.CompanyID,
		SectorID:               e.SectorID,
		BudgetPeriodID:         e.BudgetPeriodID,
		AcquisitionPeriodID:    e.AcquisitionPeriodID,
		AcquisitionPeriodStart: calendar.Format(e.AcquisitionPeriodStart),
		AcquisitionPeriodEnd:   calendar.Format(e.AcquisitionPeriodEnd),
		Month:                  e.Month,
		Year:                   e.Year,
		VacationDays:           e.VacationDays,
		AbonoDays:              e.AbonoDays,
		ThirteenthAdvance:      e.ThirteenthAdvance,
		CalculationResponse:    NewCalculationResponse(e.Calculation),
		Status:                 string(e.Status),
		StatusLabel:            statusLabel,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}
