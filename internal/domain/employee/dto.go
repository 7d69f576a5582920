package employee

import "github.com/shopspring/decimal"

type HourlyRateResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Salary        decimal.Decimal `json:"salary"`
	DangerPay     bool            `json:"danger_pay"`
	EffectiveBase decimal.Decimal `json:"effective_base"`
	MonthlyHours  decimal.Decimal `json:"monthly_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
}

func NewHourlyRateResponse(e Employee, r HourlyRate) HourlyRateResponse {
	return HourlyRateResponse{
		EmployeeID:    e.ID,
		Salary:        e.Salary,
		DangerPay:     e.DangerPay,
		EffectiveBase: r.EffectiveBase,
		MonthlyHours:  r.Hours,
		HourlyRate:    r.Rate.Round(4),
	}
}
