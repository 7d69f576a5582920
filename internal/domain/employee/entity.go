package employee

import (
	"github.com/shopspring/decimal"
)

// Employee is the read-only projection of the masters-data employee record
// consumed by the compensation calculators.
type Employee struct {
	ID           string
	CompanyID    string
	CostCenterID *string
	SectorID     *string
	FullName     string
	Function     string // job title, snapshotted onto overtime entries
	Salary       decimal.Decimal
	DangerPay    bool
	MonthlyHours *decimal.Decimal // nil or <= 0 means the 220h baseline
}

// HourlyRate is the hourly rate of an employee together with its inputs.
type HourlyRate struct {
	EffectiveBase decimal.Decimal // salary, plus the danger-pay premium when applicable
	Hours         decimal.Decimal
	Rate          decimal.Decimal
}
