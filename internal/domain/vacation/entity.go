package vacation

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusApproved  Status = "approved"
	StatusTaken     Status = "taken"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusApproved, StatusTaken:
		return true
	}
	return false
}

// Next returns the status that follows s, or false when s is final.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusScheduled:
		return StatusApproved, true
	case StatusApproved:
		return StatusTaken, true
	}
	return "", false
}

// MaxDays caps vacation plus abono days on a single entry.
const MaxDays = 30

// Calculation is the priced result of a vacation request.
type Calculation struct {
	BaseSalary         decimal.Decimal
	OvertimeAverage    decimal.Decimal
	DailyValue         decimal.Decimal
	VacationValue      decimal.Decimal
	OnethirdValue      decimal.Decimal
	AbonoValue         decimal.Decimal
	AbonoOnethirdValue decimal.Decimal
	ThirteenthValue    decimal.Decimal
}

// Total is everything paid out for the entry.
func (c Calculation) Total() decimal.Decimal {
	return c.VacationValue.
		Add(c.OnethirdValue).
		Add(c.AbonoValue).
		Add(c.AbonoOnethirdValue).
		Add(c.ThirteenthValue)
}

type VacationEntry struct {
	ID                     string
	EmployeeID             string
	CompanyID              string
	SectorID               *string
	BudgetPeriodID         string
	AcquisitionPeriodID    string
	AcquisitionPeriodStart time.Time
	AcquisitionPeriodEnd   time.Time
	Month                  int
	Year                   int
	VacationDays           int
	AbonoDays              int
	ThirteenthAdvance      bool
	Calculation
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	CompanyID  string
	EmployeeID *string
}
