package acquisition

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
)

type AcquisitionPeriodServiceImpl struct {
	repo         acquisition.AcquisitionPeriodRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewAcquisitionPeriodService(repo acquisition.AcquisitionPeriodRepository, employeeRepo employee.EmployeeRepository, logger *slog.Logger) *AcquisitionPeriodServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcquisitionPeriodServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create implements acquisition.AcquisitionPeriodService. The window ends one day
// short of a year after the start date.
func (s *AcquisitionPeriodServiceImpl) Create(ctx context.Context, req acquisition.CreateAcquisitionPeriodRequest) (acquisition.AcquisitionPeriod, error) {
	if err := req.Validate(); err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}

	start, err := calendar.Parse(req.StartDate)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	year := req.Year
	if year == 0 {
		year = start.Year()
	}

	created, err := s.repo.Create(ctx, acquisition.AcquisitionPeriod{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    calendar.OneYearWindowEnd(start),
		Year:       year,
	})
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}

	s.logger.Info("acquisition period created",
		"acquisition_period_id", created.ID,
		"employee_id", created.EmployeeID,
		"start_date", calendar.Format(created.StartDate),
		"end_date", calendar.Format(created.EndDate),
	)
	return created, nil
}

// Get implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) Get(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	return s.repo.GetByID(ctx, id)
}

// List implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) List(ctx context.Context, req acquisition.ListAcquisitionPeriodsRequest) ([]acquisition.AcquisitionPeriod, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByEmployee(ctx, req.EmployeeID, req.Status)
}

// Close implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) Close(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	closed, err := s.repo.Close(ctx, id)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	s.logger.Info("acquisition period closed", "acquisition_period_id", id)
	return closed, nil
}

// Reopen implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) Reopen(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	reopened, err := s.repo.Reopen(ctx, id)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	s.logger.Info("acquisition period reopened", "acquisition_period_id", id)
	return reopened, nil
}

// Consume implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) Consume(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	used, err := s.repo.Consume(ctx, id)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	s.logger.Info("acquisition period consumed", "acquisition_period_id", id)
	return used, nil
}

// Release implements acquisition.AcquisitionPeriodService.
func (s *AcquisitionPeriodServiceImpl) Release(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	released, err := s.repo.Release(ctx, id)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	s.logger.Info("acquisition period released", "acquisition_period_id", id)
	return released, nil
}

var _ acquisition.AcquisitionPeriodService = (*AcquisitionPeriodServiceImpl)(nil)
