package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/repository/postgresql"
)

func newBudgetPeriod(companyID string, year int) budget.BudgetPeriod {
	return budget.BudgetPeriod{
		CompanyID: companyID,
		Year:      year,
		StartDate: calendar.Date(year, 1, 1),
		EndDate:   calendar.Date(year, 12, 31),
	}
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	emp := setup.CreateEmployee(t, uuid.NewString(), 3000)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.CompanyID, got.CompanyID)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(3000)))
	assert.Nil(t, got.MonthlyHours)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBudgetPeriodRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewBudgetPeriodRepository(setup.DB)
	companyID := uuid.NewString()

	_, err := repo.GetOpenByCompany(ctx, companyID)
	assert.ErrorIs(t, err, budget.ErrNoOpenPeriod)

	p, err := repo.Create(ctx, newBudgetPeriod(companyID, 2025))
	require.NoError(t, err)
	assert.Equal(t, budget.StatusOpen, p.Status)
	assert.Equal(t, calendar.Date(2025, 1, 1), p.StartDate)

	_, err = repo.Create(ctx, newBudgetPeriod(companyID, 2026))
	assert.ErrorIs(t, err, budget.ErrOpenPeriodExists)

	_, err = repo.Create(ctx, newBudgetPeriod(uuid.NewString(), 2025))
	assert.NoError(t, err, "open periods are scoped per company")

	closedAt := calendar.Date(2025, 12, 31)
	closed, err := repo.Close(ctx, p.ID, "user-1", closedAt)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, "user-1", *closed.ClosedBy)

	_, err = repo.Close(ctx, p.ID, "user-1", closedAt)
	assert.ErrorIs(t, err, budget.ErrPeriodNotOpen)

	p.Description = "edited"
	_, err = repo.Update(ctx, p)
	assert.ErrorIs(t, err, budget.ErrPeriodClosed)

	next, err := repo.Create(ctx, newBudgetPeriod(companyID, 2026))
	require.NoError(t, err)

	_, err = repo.Reopen(ctx, p.ID)
	assert.ErrorIs(t, err, budget.ErrOpenPeriodExists, "reopen would leave two open periods")

	_, err = repo.Close(ctx, next.ID, "user-1", closedAt)
	require.NoError(t, err)
	reopened, err := repo.Reopen(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedBy)
	assert.Nil(t, reopened.ClosedAt)

	periods, err := repo.ListByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, periods, 2)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, budget.ErrBudgetPeriodNotFound)
}

func TestOvertimeEntryRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	budgetRepo := postgresql.NewBudgetPeriodRepository(setup.DB)
	repo := postgresql.NewOvertimeEntryRepository(setup.DB)

	emp := setup.CreateEmployee(t, uuid.NewString(), 3000)
	period, err := budgetRepo.Create(ctx, newBudgetPeriod(emp.CompanyID, 2025))
	require.NoError(t, err)

	entry := func(month int, total string) overtime.OvertimeEntry {
		return overtime.OvertimeEntry{
			CompanyID:      emp.CompanyID,
			EmployeeID:     emp.ID,
			BudgetPeriodID: period.ID,
			Year:           2025,
			Month:          month,
			Quantities:     overtime.Quantities{HE50: decimal.RequireFromString("10")},
			Values: overtime.Values{
				HE50:  decimal.RequireFromString(total),
				Total: decimal.RequireFromString(total),
			},
			Status: overtime.StatusOpen,
		}
	}

	created, err := repo.CreateBatch(ctx, []overtime.OvertimeEntry{entry(1, "231.82"), entry(2, "100.00")})
	require.NoError(t, err)
	require.Len(t, created, 2)

	_, err = repo.CreateBatch(ctx, []overtime.OvertimeEntry{entry(3, "50.00"), entry(1, "10.00")})
	assert.ErrorIs(t, err, overtime.ErrDuplicateMonth)

	year := 2025
	all, err := repo.List(ctx, overtime.Filter{CompanyID: emp.CompanyID, Year: &year})
	require.NoError(t, err)
	assert.Len(t, all, 2, "failed batch leaves nothing behind")

	total, err := repo.TotalForEmployeeMonth(ctx, emp.ID, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, "231.82", total.StringFixed(2))

	total, err = repo.TotalForEmployeeMonth(ctx, emp.ID, 2024, 1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	require.NoError(t, repo.Delete(ctx, created[1].ID))
	_, err = repo.GetByID(ctx, created[1].ID)
	assert.ErrorIs(t, err, overtime.ErrOvertimeEntryNotFound)
}

func TestVacationAndAcquisitionRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	budgetRepo := postgresql.NewBudgetPeriodRepository(setup.DB)
	acquisitionRepo := postgresql.NewAcquisitionPeriodRepository(setup.DB)
	repo := postgresql.NewVacationEntryRepository(setup.DB)

	emp := setup.CreateEmployee(t, uuid.NewString(), 3000)
	period, err := budgetRepo.Create(ctx, newBudgetPeriod(emp.CompanyID, 2025))
	require.NoError(t, err)

	start := calendar.Date(2024, 3, 10)
	acq, err := acquisitionRepo.Create(ctx, acquisition.AcquisitionPeriod{
		EmployeeID: emp.ID,
		StartDate:  start,
		EndDate:    calendar.OneYearWindowEnd(start),
		Year:       2024,
	})
	require.NoError(t, err)
	assert.Equal(t, acquisition.StatusOpen, acq.Status)
	assert.Equal(t, calendar.Date(2025, 3, 9), acq.EndDate)

	_, err = acquisitionRepo.Consume(ctx, acq.ID)
	require.NoError(t, err)
	_, err = acquisitionRepo.Consume(ctx, acq.ID)
	assert.ErrorIs(t, err, acquisition.ErrPeriodNotOpen)

	newEntry := vacation.VacationEntry{
		EmployeeID:             emp.ID,
		CompanyID:              emp.CompanyID,
		BudgetPeriodID:         period.ID,
		AcquisitionPeriodID:    acq.ID,
		AcquisitionPeriodStart: acq.StartDate,
		AcquisitionPeriodEnd:   acq.EndDate,
		Month:                  7,
		Year:                   2025,
		VacationDays:           30,
		Calculation: vacation.Calculation{
			BaseSalary:    decimal.NewFromInt(3000),
			DailyValue:    decimal.NewFromInt(100),
			VacationValue: decimal.NewFromInt(3000),
			OnethirdValue: decimal.NewFromInt(1000),
		},
		Status: vacation.StatusScheduled,
	}
	entry, err := repo.Create(ctx, newEntry)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newEntry)
	assert.ErrorIs(t, err, vacation.ErrAcquisitionPeriodTaken)

	_, err = repo.UpdateStatus(ctx, entry.ID, vacation.StatusApproved, vacation.StatusTaken)
	assert.ErrorIs(t, err, vacation.ErrInvalidStatusTransition)
	approved, err := repo.UpdateStatus(ctx, entry.ID, vacation.StatusScheduled, vacation.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, approved.Status)

	_, err = acquisitionRepo.Close(ctx, acq.ID)
	require.NoError(t, err)
	_, err = acquisitionRepo.Reopen(ctx, acq.ID)
	assert.ErrorIs(t, err, acquisition.ErrPeriodInUse)

	require.NoError(t, repo.Delete(ctx, entry.ID))
	reopened, err := acquisitionRepo.Reopen(ctx, acq.ID)
	require.NoError(t, err)
	assert.Equal(t, acquisition.StatusOpen, reopened.Status)
}

func TestWithinTransactionRollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewBudgetPeriodRepository(setup.DB)
	companyID := uuid.NewString()
	errAbort := errors.New("abort")

	err := setup.DB.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, newBudgetPeriod(companyID, 2025)); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = repo.GetOpenByCompany(ctx, companyID)
	assert.ErrorIs(t, err, budget.ErrNoOpenPeriod)
}
