package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusPending Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusPending:
		return true
	}
	return false
}

// Quantities are the overtime figures reported for one month.
type Quantities struct {
	HE50        decimal.Decimal
	HE100       decimal.Decimal
	HolidayDays decimal.Decimal
	NightHours  decimal.Decimal
}

// Values are the monetary results for one month. Total is the sum of the six components.
type Values struct {
	HE50     decimal.Decimal
	HE100    decimal.Decimal
	Holiday  decimal.Decimal
	Night    decimal.Decimal
	DSR      decimal.Decimal
	DSRNight decimal.Decimal
	Total    decimal.Decimal
}

// Calculation is the outcome of pricing one month of quantities at an hourly rate.
type Calculation struct {
	Rate               decimal.Decimal
	Values             Values
	ReferenceAmount    decimal.Decimal
	Variance           decimal.Decimal
	VariancePercentage decimal.Decimal
}

type OvertimeEntry struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	CostCenterID   *string
	BudgetPeriodID string
	Function       string
	Year           int
	Month          int

	Quantities Quantities
	Values     Values

	// ReferenceAmount is the prior-year or budgeted total the entry is compared with.
	ReferenceAmount    decimal.Decimal
	Variance           decimal.Decimal
	VariancePercentage decimal.Decimal

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply copies the quantities and the computed values of c onto the entry.
func (e *OvertimeEntry) Apply(q Quantities, c Calculation) {
	e.Quantities = q
	e.Values = c.Values
	e.ReferenceAmount = c.ReferenceAmount
	e.Variance = c.Variance
	e.VariancePercentage = c.VariancePercentage
}

type Filter struct {
	CompanyID  string
	EmployeeID *string
	Year       *int
}
