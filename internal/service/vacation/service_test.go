package vacation

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
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-budget-go/internal/repository/memory"
	acquisitionService "github.com/cmlabs-hris/payroll-budget-go/internal/service/acquisition"
)

var errStorage = errors.New("storage unavailable")

// failingCreate stores nothing and fails every Create.
type failingCreate struct {
	vacation.VacationEntryRepository
}

func (failingCreate) Create(context.Context, vacation.VacationEntry) (vacation.VacationEntry, error) {
	return vacation.VacationEntry{}, errStorage
}

type fixture struct {
	store       *memory.Store
	svc         *VacationServiceImpl
	acquisition *acquisitionService.AcquisitionPeriodServiceImpl
	budgetRepo  budget.BudgetPeriodRepository
	emp         employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	emp := store.AddEmployee(employee.Employee{
		ID:        uuid.NewString(),
		CompanyID: uuid.NewString(),
		FullName:  "Carla Souza",
		Function:  "Welder",
		Salary:    decimal.NewFromInt(3000),
		DangerPay: true,
	})

	f := fixture{
		store:      store,
		budgetRepo: memory.NewBudgetPeriodRepository(store),
		emp:        emp,
		acquisition: acquisitionService.NewAcquisitionPeriodService(
			memory.NewAcquisitionPeriodRepository(store),
			memory.NewEmployeeRepository(store),
			nil,
		),
	}
	f.svc = f.service(memory.NewVacationEntryRepository(store))
	return f
}

func (f fixture) service(repo vacation.VacationEntryRepository) *VacationServiceImpl {
	return NewVacationService(f.store, repo, f.budgetRepo, memory.NewEmployeeRepository(f.store), f.acquisition, nil)
}

func (f fixture) openBudget(t *testing.T) budget.BudgetPeriod {
	t.Helper()
	p, err := f.budgetRepo.Create(context.Background(), budget.BudgetPeriod{
		CompanyID: f.emp.CompanyID,
		Year:      2025,
		StartDate: calendar.Date(2025, 1, 1),
		EndDate:   calendar.Date(2025, 12, 31),
	})
	require.NoError(t, err)
	return p
}

func (f fixture) closeBudget(t *testing.T, p budget.BudgetPeriod) {
	t.Helper()
	_, err := f.budgetRepo.Close(context.Background(), p.ID, "user-1", p.EndDate)
	require.NoError(t, err)
}

func (f fixture) acquisitionPeriod(t *testing.T, employeeID string) acquisition.AcquisitionPeriod {
	t.Helper()
	p, err := f.acquisition.Create(context.Background(), acquisition.CreateAcquisitionPeriodRequest{
		EmployeeID: employeeID,
		StartDate:  "2024-03-10",
	})
	require.NoError(t, err)
	return p
}

func (f fixture) request(acquisitionID string) vacation.CreateVacationEntryRequest {
	return vacation.CreateVacationEntryRequest{
		EmployeeID:          f.emp.ID,
		AcquisitionPeriodID: acquisitionID,
		VacationDays:        30,
		ThirteenthAdvance:   true,
		Month:               7,
	}
}

func (f fixture) status(t *testing.T, id string) acquisition.Status {
	t.Helper()
	p, err := f.acquisition.Get(context.Background(), id)
	require.NoError(t, err)
	return p.Status
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the entry and consumes the acquisition period", func(t *testing.T) {
		f := newFixture(t)
		budgetPeriod := f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		entry, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		require.NoError(t, err)

		assert.Equal(t, vacation.StatusScheduled, entry.Status)
		assert.Equal(t, budgetPeriod.ID, entry.BudgetPeriodID)
		assert.Equal(t, 2025, entry.Year)
		assert.Equal(t, 7, entry.Month)
		assert.Equal(t, acq.StartDate, entry.AcquisitionPeriodStart)
		assert.Equal(t, acq.EndDate, entry.AcquisitionPeriodEnd)
		assert.Equal(t, "3900.00", entry.BaseSalary.StringFixed(2))
		assert.Equal(t, "1300.00", entry.OnethirdValue.StringFixed(2))
		assert.Equal(t, "1950.00", entry.ThirteenthValue.StringFixed(2))
		assert.Equal(t, "7150.00", entry.Total().StringFixed(2))

		assert.Equal(t, acquisition.StatusUsed, f.status(t, acq.ID))
	})

	t.Run("requires an open budget period", func(t *testing.T) {
		f := newFixture(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		_, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		assert.ErrorIs(t, err, budget.ErrNoOpenPeriod)
		assert.Equal(t, acquisition.StatusOpen, f.status(t, acq.ID))
	})

	t.Run("requires an acquisition period", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)

		_, err := f.svc.CreateEntry(ctx, f.request(""))
		assert.ErrorIs(t, err, acquisition.ErrNoAcquisitionPeriod)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("more than thirty days is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		req := f.request(acq.ID)
		req.VacationDays = 21
		req.AbonoDays = 10
		_, err := f.svc.CreateEntry(ctx, req)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "abono_days")

		req.VacationDays = 31
		req.AbonoDays = 0
		_, err = f.svc.CreateEntry(ctx, req)
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "vacation_days")

		assert.Equal(t, acquisition.StatusOpen, f.status(t, acq.ID))
	})

	t.Run("acquisition period of another employee", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		other := f.store.AddEmployee(employee.Employee{
			ID:        uuid.NewString(),
			CompanyID: f.emp.CompanyID,
			Salary:    decimal.NewFromInt(2000),
		})
		acq := f.acquisitionPeriod(t, other.ID)

		_, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "acquisition_period_id")
		assert.Equal(t, acquisition.StatusOpen, f.status(t, acq.ID))
	})

	t.Run("an acquisition period is consumed once", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		_, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		require.NoError(t, err)

		_, err = f.svc.CreateEntry(ctx, f.request(acq.ID))
		assert.ErrorIs(t, err, acquisition.ErrPeriodNotOpen)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)

		entries, err := f.svc.List(ctx, vacation.ListVacationEntriesRequest{CompanyID: f.emp.CompanyID})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("failed insert leaves the acquisition period open", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		_, err := f.service(failingCreate{memory.NewVacationEntryRepository(f.store)}).CreateEntry(ctx, f.request(acq.ID))
		assert.ErrorIs(t, err, errStorage)
		assert.Equal(t, acquisition.StatusOpen, f.status(t, acq.ID))
	})
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the acquisition period", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		entry, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		require.NoError(t, err)
		require.NoError(t, f.svc.DeleteEntry(ctx, entry.ID))

		assert.Equal(t, acquisition.StatusOpen, f.status(t, acq.ID))
		_, err = f.svc.Get(ctx, entry.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = f.svc.CreateEntry(ctx, f.request(acq.ID))
		assert.NoError(t, err, "released period can be scheduled again")
	})

	t.Run("closed acquisition period stays closed", func(t *testing.T) {
		f := newFixture(t)
		f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		entry, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		require.NoError(t, err)

		_, err = f.acquisition.Close(ctx, acq.ID)
		require.NoError(t, err)
		_, err = f.acquisition.Reopen(ctx, acq.ID)
		assert.ErrorIs(t, err, acquisition.ErrPeriodInUse)

		require.NoError(t, f.svc.DeleteEntry(ctx, entry.ID))
		assert.Equal(t, acquisition.StatusClosed, f.status(t, acq.ID))

		reopened, err := f.acquisition.Reopen(ctx, acq.ID)
		require.NoError(t, err)
		assert.Equal(t, acquisition.StatusOpen, reopened.Status)
	})

	t.Run("frozen once the budget period closes", func(t *testing.T) {
		f := newFixture(t)
		budgetPeriod := f.openBudget(t)
		acq := f.acquisitionPeriod(t, f.emp.ID)

		entry, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
		require.NoError(t, err)
		f.closeBudget(t, budgetPeriod)

		err = f.svc.DeleteEntry(ctx, entry.ID)
		assert.ErrorIs(t, err, budget.ErrPeriodClosed)
		assert.Equal(t, acquisition.StatusUsed, f.status(t, acq.ID))

		_, err = f.svc.Get(ctx, entry.ID)
		assert.NoError(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	budgetPeriod := f.openBudget(t)
	acq := f.acquisitionPeriod(t, f.emp.ID)

	entry, err := f.svc.CreateEntry(ctx, f.request(acq.ID))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, vacation.UpdateStatusRequest{ID: entry.ID, Status: vacation.StatusTaken})
	assert.ErrorIs(t, err, vacation.ErrInvalidStatusTransition, "cannot skip approval")

	approved, err := f.svc.UpdateStatus(ctx, vacation.UpdateStatusRequest{ID: entry.ID, Status: vacation.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, approved.Status)

	_, err = f.svc.UpdateStatus(ctx, vacation.UpdateStatusRequest{ID: entry.ID, Status: vacation.StatusScheduled})
	assert.ErrorIs(t, err, apperror.ErrInvalidState, "no way back")

	_, err = f.svc.UpdateStatus(ctx, vacation.UpdateStatusRequest{ID: entry.ID, Status: "cancelled"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "status")

	f.closeBudget(t, budgetPeriod)
	_, err = f.svc.UpdateStatus(ctx, vacation.UpdateStatusRequest{ID: entry.ID, Status: vacation.StatusTaken})
	assert.ErrorIs(t, err, budget.ErrPeriodClosed)
}

func TestPreview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	calc, err := f.svc.Preview(ctx, vacation.PreviewVacationRequest{
		EmployeeID:        f.emp.ID,
		VacationDays:      30,
		ThirteenthAdvance: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "7150.00", calc.Total().StringFixed(2))

	entries, err := f.svc.List(ctx, vacation.ListVacationEntriesRequest{CompanyID: f.emp.CompanyID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
