package overtime

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-budget-go/internal/service/compensation"
)

type OvertimeServiceImpl struct {
	tx           database.Transactor
	repo         overtime.OvertimeEntryRepository
	budgetRepo   budget.BudgetPeriodRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewOvertimeService(
	tx database.Transactor,
	repo overtime.OvertimeEntryRepository,
	budgetRepo budget.BudgetPeriodRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) *OvertimeServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &OvertimeServiceImpl{
		tx:           tx,
		repo:         repo,
		budgetRepo:   budgetRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateEntries implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) CreateEntries(ctx context.Context, req overtime.CreateOvertimeEntriesRequest) ([]overtime.OvertimeEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.CompanyID != req.CompanyID {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee does not belong to the company"}}
	}

	costCenterID := req.CostCenterID
	if costCenterID == nil {
		costCenterID = emp.CostCenterID
	}
	rate := compensation.EmployeeHourlyRate(emp).Rate

	var created []overtime.OvertimeEntry
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Held until commit so the period cannot close under the batch.
		period, err := s.budgetRepo.LockOpenByCompany(ctx, req.CompanyID)
		if err != nil {
			return err
		}

		entries := make([]overtime.OvertimeEntry, 0, len(req.Months))
		for _, m := range req.Months {
			reference, err := s.reference(ctx, emp.ID, period.Year, m.Month, m.Reference())
			if err != nil {
				return err
			}

			q := m.Quantities()
			calc := compensation.Overtime(rate, q, reference)
			if !calc.Values.Total.IsPositive() {
				continue
			}

			entry := overtime.OvertimeEntry{
				CompanyID:      req.CompanyID,
				EmployeeID:     emp.ID,
				CostCenterID:   costCenterID,
				BudgetPeriodID: period.ID,
				Function:       emp.Function,
				Year:           period.Year,
				Month:          m.Month,
				Status:         overtime.StatusOpen,
			}
			entry.Apply(q, calc)
			entries = append(entries, entry)
		}

		if len(entries) == 0 {
			created = []overtime.OvertimeEntry{}
			return nil
		}

		created, err = s.repo.CreateBatch(ctx, entries)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("overtime entries created",
		"employee_id", emp.ID,
		"company_id", req.CompanyID,
		"submitted", len(req.Months),
		"stored", len(created),
	)
	return created, nil
}

// reference resolves the amount a month is compared against: the supplied figure,
// else the employee's total for the same month of the previous year.
func (s *OvertimeServiceImpl) reference(ctx context.Context, employeeID string, year, month int, supplied *decimal.Decimal) (decimal.Decimal, error) {
	if supplied != nil {
		return *supplied, nil
	}
	return s.repo.TotalForEmployeeMonth(ctx, employeeID, year-1, month)
}

// Preview implements overtime.OvertimeService. Nothing is stored and months
// without a supplied reference are compared against zero.
func (s *OvertimeServiceImpl) Preview(ctx context.Context, req overtime.PreviewOvertimeRequest) ([]overtime.MonthPreview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	rate := compensation.EmployeeHourlyRate(emp).Rate

	previews := make([]overtime.MonthPreview, 0, len(req.Months))
	for _, m := range req.Months {
		reference := decimal.Zero
		if ref := m.Reference(); ref != nil {
			reference = *ref
		}
		previews = append(previews, overtime.MonthPreview{
			Month:       m.Month,
			Calculation: compensation.Overtime(rate, m.Quantities(), reference),
		})
	}
	return previews, nil
}

// Get implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, req overtime.ListOvertimeEntriesRequest) ([]overtime.OvertimeEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, overtime.Filter{
		CompanyID:  req.CompanyID,
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
	})
}

// Update implements overtime.OvertimeService. The entry is repriced at the
// employee's current rate and keeps its reference unless a new one is supplied.
func (s *OvertimeServiceImpl) Update(ctx context.Context, req overtime.UpdateOvertimeEntryRequest) (overtime.OvertimeEntry, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeEntry{}, err
	}

	var updated overtime.OvertimeEntry
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.lockEditable(ctx, req.ID)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return err
		}

		reference := entry.ReferenceAmount
		if ref := req.Reference(); ref != nil {
			reference = *ref
		}

		q := req.Quantities()
		calc := compensation.Overtime(compensation.EmployeeHourlyRate(emp).Rate, q, reference)
		if !calc.Values.Total.IsPositive() {
			return validator.ValidationErrors{{Field: "total_value", Message: "quantities must price to a positive total; delete the entry instead"}}
		}
		entry.Apply(q, calc)

		updated, err = s.repo.Update(ctx, entry)
		return err
	})
	if err != nil {
		return overtime.OvertimeEntry{}, err
	}

	s.logger.Info("overtime entry updated", "overtime_entry_id", updated.ID)
	return updated, nil
}

// Delete implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockEditable(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("overtime entry deleted", "overtime_entry_id", id)
	return nil
}

// lockEditable loads an entry and share-locks its budget period, failing when
// the period is closed.
func (s *OvertimeServiceImpl) lockEditable(ctx context.Context, id string) (overtime.OvertimeEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeEntry{}, err
	}

	period, err := s.budgetRepo.LockByID(ctx, entry.BudgetPeriodID)
	if err != nil {
		return overtime.OvertimeEntry{}, err
	}
	if period.IsClosed() {
		return overtime.OvertimeEntry{}, budget.ErrPeriodClosed
	}
	return entry, nil
}

var _ overtime.OvertimeService = (*OvertimeServiceImpl)(nil)
