package overtime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

// MonthQuantities is one row of the monthly overtime grid.
type MonthQuantities struct {
	Month           int              `json:"month" validate:"gte=1,lte=12"`
	HE50Qty         decimal.Decimal  `json:"he50_qty" validate:"gte=0"`
	HE100Qty        decimal.Decimal  `json:"he100_qty" validate:"gte=0"`
	HolidayDaysQty  decimal.Decimal  `json:"holiday_days_qty" validate:"gte=0"`
	NightHoursQty   decimal.Decimal  `json:"night_hours_qty" validate:"gte=0"`
	ReferenceAmount *decimal.Decimal `json:"reference_amount,omitempty"`
	// BudgetedAmount is accepted as an alias of ReferenceAmount.
	BudgetedAmount *decimal.Decimal `json:"budgeted_amount,omitempty"`
}

func (m MonthQuantities) Quantities() Quantities {
	return Quantities{
		HE50:        m.HE50Qty,
		HE100:       m.HE100Qty,
		HolidayDays: m.HolidayDaysQty,
		NightHours:  m.NightHoursQty,
	}
}

// Reference returns the supplied reference amount, or nil when none was given.
func (m MonthQuantities) Reference() *decimal.Decimal {
	if m.ReferenceAmount != nil {
		return m.ReferenceAmount
	}
	return m.BudgetedAmount
}

func validateMonths(months []MonthQuantities, errs *validator.ValidationErrors) {
	seen := make(map[int]bool, len(months))
	for i, m := range months {
		if ref := m.Reference(); ref != nil && ref.IsNegative() {
			errs.Add(fmt.Sprintf("months[%d].reference_amount", i), "reference_amount must be greater than or equal to 0")
		}
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		if seen[m.Month] {
			errs.Add(fmt.Sprintf("months[%d].month", i), fmt.Sprintf("month %d appears more than once", m.Month))
		}
		seen[m.Month] = true
	}
}

type CreateOvertimeEntriesRequest struct {
	CompanyID  string `json:"company_id" validate:"required,uuid"`
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	// CostCenterID defaults to the employee's cost center.
	CostCenterID *string           `json:"cost_center_id,omitempty" validate:"omitempty,uuid"`
	Months       []MonthQuantities `json:"months" validate:"required,min=1,max=12,dive"`
}

func (r *CreateOvertimeEntriesRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	validateMonths(r.Months, &errs)
	return errs.Err()
}

type PreviewOvertimeRequest struct {
	EmployeeID string            `json:"employee_id" validate:"required,uuid"`
	Months     []MonthQuantities `json:"months" validate:"required,min=1,max=12,dive"`
}

func (r *PreviewOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	validateMonths(r.Months, &errs)
	return errs.Err()
}

type UpdateOvertimeEntryRequest struct {
	ID              string           `json:"-"`
	HE50Qty         decimal.Decimal  `json:"he50_qty" validate:"gte=0"`
	HE100Qty        decimal.Decimal  `json:"he100_qty" validate:"gte=0"`
	HolidayDaysQty  decimal.Decimal  `json:"holiday_days_qty" validate:"gte=0"`
	NightHoursQty   decimal.Decimal  `json:"night_hours_qty" validate:"gte=0"`
	ReferenceAmount *decimal.Decimal `json:"reference_amount,omitempty"`
	BudgetedAmount  *decimal.Decimal `json:"budgeted_amount,omitempty"`
}

func (r *UpdateOvertimeEntryRequest) Validate() error {
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
	if ref := r.Reference(); ref != nil && ref.IsNegative() {
		errs.Add("reference_amount", "reference_amount must be greater than or equal to 0")
	}
	return errs.Err()
}

func (r *UpdateOvertimeEntryRequest) Quantities() Quantities {
	return Quantities{
		HE50:        r.HE50Qty,
		HE100:       r.HE100Qty,
		HolidayDays: r.HolidayDaysQty,
		NightHours:  r.NightHoursQty,
	}
}

func (r *UpdateOvertimeEntryRequest) Reference() *decimal.Decimal {
	if r.ReferenceAmount != nil {
		return r.ReferenceAmount
	}
	return r.BudgetedAmount
}

type ListOvertimeEntriesRequest struct {
	CompanyID  string  `json:"company_id" validate:"required,uuid"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
	Year       *int    `json:"year" validate:"omitempty,gte=1900,lte=9999"`
}

func (r *ListOvertimeEntriesRequest) Validate() error {
	return validator.Struct(r)
}

type ValuesResponse struct {
	HE50Value     decimal.Decimal `json:"he50_value"`
	HE100Value    decimal.Decimal `json:"he100_value"`
	HolidayValue  decimal.Decimal `json:"holiday_value"`
	NightValue    decimal.Decimal `json:"night_value"`
	DSRValue      decimal.Decimal `json:"dsr_value"`
	DSRNightValue decimal.Decimal `json:"dsr_night_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

func newValuesResponse(v Values) ValuesResponse {
	return ValuesResponse{
		HE50Value:     v.HE50,
		HE100Value:    v.HE100,
		HolidayValue:  v.Holiday,
		NightValue:    v.Night,
		DSRValue:      v.DSR,
		DSRNightValue: v.DSRNight,
		TotalValue:    v.Total,
	}
}

type OvertimeEntryResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeID     string  `json:"employee_id"`
	CostCenterID   *string `json:"cost_center_id,omitempty"`
	BudgetPeriodID string  `json:"budget_period_id"`
	Function       string  `json:"function"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`

	HE50Qty        decimal.Decimal `json:"he50_qty"`
	HE100Qty       decimal.Decimal `json:"he100_qty"`
	HolidayDaysQty decimal.Decimal `json:"holiday_days_qty"`
	NightHoursQty  decimal.Decimal `json:"night_hours_qty"`
	ValuesResponse

	ReferenceAmount    decimal.Decimal `json:"reference_amount"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variance_percentage"`

	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewOvertimeEntryResponse(e OvertimeEntry, statusLabel string) OvertimeEntryResponse {
	return OvertimeEntryResponse{
		ID:                 e.ID,
		CompanyID:          e.CompanyID,
		EmployeeID:         e.EmployeeID,
		CostCenterID:       e.CostCenterID,
		BudgetPeriodID:     e.BudgetPeriodID,
		Function:           e.Function,
		Year:               e.Year,
		Month:              e.Month,
		HE50Qty:            e.Quantities.HE50,
		HE100Qty:           e.Quantities.HE100,
		HolidayDaysQty:     e.Quantities.HolidayDays,
		NightHoursQty:      e.Quantities.NightHours,
		ValuesResponse:     newValuesResponse(e.Values),
		ReferenceAmount:    e.ReferenceAmount,
		Variance:           e.Variance,
		VariancePercentage: e.VariancePercentage,
		Status:             string(e.Status),
		StatusLabel:        statusLabel,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// MonthPreview is the priced result of one month without persisting it.
type MonthPreview struct {
	Month int
	Calculation
}

type MonthPreviewResponse struct {
	Month      int             `json:"month"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	ValuesResponse
	ReferenceAmount    decimal.Decimal `json:"reference_amount"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variance_percentage"`
}

func NewMonthPreviewResponse(p MonthPreview) MonthPreviewResponse {
	return MonthPreviewResponse{
		Month:              p.Month,
		HourlyRate:         p.Rate,
		ValuesResponse:     newValuesResponse(p.Values),
		ReferenceAmount:    p.ReferenceAmount,
		Variance:           p.Variance,
		VariancePercentage: p.VariancePercentage,
	}
}
