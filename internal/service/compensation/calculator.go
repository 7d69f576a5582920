// Package compensation prices overtime and vacation from an employee's pay data.
// All functions are pure.
package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

const moneyPlaces = 2

var (
	dangerPayFactor   = decimal.RequireFromString("1.3")
	baselineHours     = decimal.NewFromInt(220)
	he50Factor        = decimal.RequireFromString("1.5")
	doubleFactor      = decimal.NewFromInt(2)
	holidayDayHours   = decimal.NewFromInt(8)
	nightPremium      = decimal.RequireFromString("0.2")
	monthWorkdays     = decimal.NewFromInt(25)
	monthRestDays     = decimal.NewFromInt(5)
	hundred           = decimal.NewFromInt(100)
	vacationMonthDays = decimal.NewFromInt(30)
	onethird          = decimal.NewFromInt(3)
	thirteenthAdvance = decimal.RequireFromString("0.5")
)

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// EffectiveBase returns the salary with the 30% danger-pay premium applied when due.
func EffectiveBase(salary decimal.Decimal, dangerPay bool) decimal.Decimal {
	if dangerPay {
		return salary.Mul(dangerPayFactor)
	}
	return salary
}

// HourlyRate divides the effective base by the employee's monthly hours, or by 220
// when none are configured. The rate is not rounded.
func HourlyRate(salary decimal.Decimal, dangerPay bool, monthlyHours *decimal.Decimal) employee.HourlyRate {
	hours := baselineHours
	if monthlyHours != nil && monthlyHours.IsPositive() {
		hours = *monthlyHours
	}

	base := EffectiveBase(salary, dangerPay)
	return employee.HourlyRate{
		EffectiveBase: base,
		Hours:         hours,
		Rate:          base.Div(hours),
	}
}

// EmployeeHourlyRate is HourlyRate for e.
func EmployeeHourlyRate(e employee.Employee) employee.HourlyRate {
	return HourlyRate(e.Salary, e.DangerPay, e.MonthlyHours)
}

// Overtime prices one month of quantities. Each component is rounded to cents and the
// total is the sum of the rounded components.
func Overtime(rate decimal.Decimal, q overtime.Quantities, reference decimal.Decimal) overtime.Calculation {
	holidayHours := q.HolidayDays.Mul(holidayDayHours)

	v := overtime.Values{
		HE50:     round(q.HE50.Mul(rate).Mul(he50Factor)),
		HE100:    round(q.HE100.Mul(rate).Mul(doubleFactor)),
		Holiday:  round(holidayHours.Mul(rate).Mul(doubleFactor)),
		Night:    round(q.NightHours.Mul(rate).Mul(nightPremium)),
		DSR:      round(q.HE50.Add(q.HE100).Add(holidayHours).Div(monthWorkdays).Mul(monthRestDays).Mul(rate)),
		DSRNight: round(q.NightHours.Div(monthWorkdays).Mul(monthRestDays).Mul(rate).Mul(nightPremium)),
	}
	v.Total = v.HE50.Add(v.HE100).Add(v.Holiday).Add(v.Night).Add(v.DSR).Add(v.DSRNight)

	c := overtime.Calculation{
		Rate:            rate,
		Values:          v,
		ReferenceAmount: round(reference),
		Variance:        v.Total.Sub(round(reference)),
	}
	if c.ReferenceAmount.IsPositive() {
		c.VariancePercentage = round(c.Variance.Div(c.ReferenceAmount).Mul(hundred))
	}
	return c
}

// Vacation prices a vacation request. It fails with validator.ValidationErrors when a
// day count is negative or vacation and abono days together exceed 30.
func Vacation(e employee.Employee, vacationDays, abonoDays int, withThirteenth bool, overtimeAverage decimal.Decimal) (vacation.Calculation, error) {
	var errs validator.ValidationErrors
	if vacationDays < 0 {
		errs.Add("vacation_days", "vacation_days must be greater than or equal to 0")
	}
	if abonoDays < 0 {
		errs.Add("abono_days", "abono_days must be greater than or equal to 0")
	}
	if vacationDays >= 0 && abonoDays >= 0 && vacationDays+abonoDays > vacation.MaxDays {
		errs.Add("abono_days", "vacation_days plus abono_days must not exceed 30")
	}
	if err := errs.Err(); err != nil {
		return vacation.Calculation{}, err
	}

	base := EffectiveBase(e.Salary, e.DangerPay)
	daily := base.Add(overtimeAverage).Div(vacationMonthDays)
	vacationValue := daily.Mul(decimal.NewFromInt(int64(vacationDays)))
	abonoValue := daily.Mul(decimal.NewFromInt(int64(abonoDays)))

	c := vacation.Calculation{
		BaseSalary:         round(base),
		OvertimeAverage:    round(overtimeAverage),
		DailyValue:         round(daily),
		VacationValue:      round(vacationValue),
		OnethirdValue:      round(vacationValue.Div(onethird)),
		AbonoValue:         round(abonoValue),
		AbonoOnethirdValue: round(abonoValue.Div(onethird)),
		ThirteenthValue:    decimal.Zero,
	}
	if withThirteenth {
		c.ThirteenthValue = round(base.Mul(thirteenthAdvance))
	}
	return c, nil
}
