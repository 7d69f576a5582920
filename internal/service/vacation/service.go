package vacation

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-budget-go/internal/service/compensation"
)

type VacationServiceImpl struct {
	tx             database.Transactor
	repo           vacation.VacationEntryRepository
	budgetRepo     budget.BudgetPeriodRepository
	employeeRepo   employee.EmployeeRepository
	acquisitionSvc acquisition.AcquisitionPeriodService
	logger         *slog.Logger
}

func NewVacationService(
	tx database.Transactor,
	repo vacation.VacationEntryRepository,
	budgetRepo budget.BudgetPeriodRepository,
	employeeRepo employee.EmployeeRepository,
	acquisitionSvc acquisition.AcquisitionPeriodService,
	logger *slog.Logger,
) *VacationServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &VacationServiceImpl{
		tx:             tx,
		repo:           repo,
		budgetRepo:     budgetRepo,
		employeeRepo:   employeeRepo,
		acquisitionSvc: acquisitionSvc,
		logger:         logger,
	}
}

// CreateEntry implements vacation.VacationService.
func (s *VacationServiceImpl) CreateEntry(ctx context.Context, req vacation.CreateVacationEntryRequest) (vacation.VacationEntry, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationEntry{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return vacation.VacationEntry{}, err
	}

	calc, err := compensation.Vacation(emp, req.VacationDays, req.AbonoDays, req.ThirteenthAdvance, req.OvertimeAverage)
	if err != nil {
		return vacation.VacationEntry{}, err
	}

	if validator.IsEmpty(req.AcquisitionPeriodID) {
		return vacation.VacationEntry{}, acquisition.ErrNoAcquisitionPeriod
	}

	var created vacation.VacationEntry
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.budgetRepo.LockOpenByCompany(ctx, emp.CompanyID)
		if err != nil {
			return err
		}

		acq, err := s.acquisitionSvc.Get(ctx, req.AcquisitionPeriodID)
		if err != nil {
			return err
		}
		if acq.EmployeeID != emp.ID {
			return validator.ValidationErrors{{
				Field:   "acquisition_period_id",
				Message: "acquisition period belongs to another employee",
			}}
		}

		acq, err = s.acquisitionSvc.Consume(ctx, acq.ID)
		if err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, vacation.VacationEntry{
			EmployeeID:             emp.ID,
			CompanyID:              emp.CompanyID,
			SectorID:               emp.SectorID,
			BudgetPeriodID:         period.ID,
			AcquisitionPeriodID:    acq.ID,
			AcquisitionPeriodStart: acq.StartDate,
			AcquisitionPeriodEnd:   acq.EndDate,
			Month:                  req.Month,
			Year:                   period.Year,
			VacationDays:           req.VacationDays,
			AbonoDays:              req.AbonoDays,
			ThirteenthAdvance:      req.ThirteenthAdvance,
			Calculation:            calc,
			Status:                 vacation.StatusScheduled,
		})
		return err
	})
	if err != nil {
		return vacation.VacationEntry{}, err
	}

	s.logger.Info("vacation entry created",
		"vacation_entry_id", created.ID,
		"employee_id", created.EmployeeID,
		"acquisition_period_id", created.AcquisitionPeriodID,
	)
	return created, nil
}

// Preview implements vacation.VacationService.
func (s *VacationServiceImpl) Preview(ctx context.Context, req vacation.PreviewVacationRequest) (vacation.Calculation, error) {
	if err := req.Validate(); err != nil {
		return vacation.Calculation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return vacation.Calculation{}, err
	}
	return compensation.Vacation(emp, req.VacationDays, req.AbonoDays, req.ThirteenthAdvance, req.OvertimeAverage)
}

// Get implements vacation.VacationService.
func (s *VacationServiceImpl) Get(ctx context.Context, id string) (vacation.VacationEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// List implements vacation.VacationService.
func (s *VacationServiceImpl) List(ctx context.Context, req vacation.ListVacationEntriesRequest) ([]vacation.VacationEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, vacation.Filter{CompanyID: req.CompanyID, EmployeeID: req.EmployeeID})
}

// UpdateStatus implements vacation.VacationService. Entries only move one step
// forward: scheduled, approved, taken.
func (s *VacationServiceImpl) UpdateStatus(ctx context.Context, req vacation.UpdateStatusRequest) (vacation.VacationEntry, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationEntry{}, err
	}

	var updated vacation.VacationEntry
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.lockEditable(ctx, req.ID)
		if err != nil {
			return err
		}

		next, ok := entry.Status.Next()
		if !ok || next != req.Status {
			return vacation.ErrInvalidStatusTransition
		}

		updated, err = s.repo.UpdateStatus(ctx, entry.ID, entry.Status, next)
		return err
	})
	if err != nil {
		return vacation.VacationEntry{}, err
	}

	s.logger.Info("vacation entry status changed", "vacation_entry_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// DeleteEntry implements vacation.VacationService. An administratively closed
// acquisition period stays closed.
func (s *VacationServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	var released bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.lockEditable(ctx, id)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, entry.ID); err != nil {
			return err
		}

		acq, err := s.acquisitionSvc.Get(ctx, entry.AcquisitionPeriodID)
		if err != nil {
			return err
		}
		if acq.Status != acquisition.StatusUsed {
			return nil
		}

		if _, err := s.acquisitionSvc.Release(ctx, acq.ID); err != nil {
			return err
		}
		released = true
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("vacation entry deleted", "vacation_entry_id", id, "acquisition_period_released", released)
	return nil
}

// lockEditable loads an entry and share-locks its budget period, failing when
// the period is closed.
func (s *VacationServiceImpl) lockEditable(ctx context.Context, id string) (vacation.VacationEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return vacation.VacationEntry{}, err
	}

	period, err := s.budgetRepo.LockByID(ctx, entry.BudgetPeriodID)
	if err != nil {
		return vacation.VacationEntry{}, err
	}
	if period.IsClosed() {
		return vacation.VacationEntry{}, budget.ErrPeriodClosed
	}
	return entry, nil
}

var _ vacation.VacationService = (*VacationServiceImpl)(nil)
