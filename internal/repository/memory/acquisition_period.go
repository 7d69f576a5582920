package memory

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
)

type acquisitionPeriodRepository struct{ s *Store }

func NewAcquisitionPeriodRepository(s *Store) acquisition.AcquisitionPeriodRepository {
	return &acquisitionPeriodRepository{s: s}
}

func (r *acquisitionPeriodRepository) Create(ctx context.Context, p acquisition.AcquisitionPeriod) (acquisition.AcquisitionPeriod, error) {
	defer r.s.lock(ctx)()

	now := r.s.now()
	p.ID = newID()
	p.Status = acquisition.StatusOpen
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.acquisitionPeriods[p.ID] = p
	return p, nil
}

func (r *acquisitionPeriodRepository) GetByID(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.acquisitionPeriods[id]
	if !ok {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
	}
	return p, nil
}

func (r *acquisitionPeriodRepository) ListByEmployee(ctx context.Context, employeeID string, status *acquisition.Status) ([]acquisition.AcquisitionPeriod, error) {
	defer r.s.lock(ctx)()

	periods := make([]acquisition.AcquisitionPeriod, 0)
	for _, p := range r.s.acquisitionPeriods {
		if p.EmployeeID != employeeID || (status != nil && p.Status != *status) {
			continue
		}
		periods = append(periods, p)
	}
	slices.SortFunc(periods, func(a, b acquisition.AcquisitionPeriod) int {
		return b.StartDate.Compare(a.StartDate)
	})
	return periods, nil
}

// set moves the period to `to` when its status is one of from, otherwise returns wrongState.
func (r *acquisitionPeriodRepository) set(ctx context.Context, id string, to acquisition.Status, wrongState error, from ...acquisition.Status) (acquisition.AcquisitionPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.acquisitionPeriods[id]
	if !ok {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
	}
	if !slices.Contains(from, p.Status) {
		return acquisition.AcquisitionPeriod{}, wrongState
	}

	p.Status = to
	p.UpdatedAt = r.s.now()
	r.s.acquisitionPeriods[id] = p
	return p, nil
}

func (r *acquisitionPeriodRepository) Consume(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	return r.set(ctx, id, acquisition.StatusUsed, acquisition.ErrPeriodNotOpen, acquisition.StatusOpen)
}

func (r *acquisitionPeriodRepository) Release(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	return r.set(ctx, id, acquisition.StatusOpen, acquisition.ErrPeriodNotUsed, acquisition.StatusUsed)
}

func (r *acquisitionPeriodRepository) Close(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	return r.set(ctx, id, acquisition.StatusClosed, acquisition.ErrPeriodAlreadyClosed, acquisition.StatusOpen, acquisition.StatusUsed)
}

func (r *acquisitionPeriodRepository) Reopen(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.acquisitionPeriods[id]
	if !ok {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
	}
	switch p.Status {
	case acquisition.StatusOpen:
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodNotClosed
	case acquisition.StatusUsed:
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodInUse
	}
	for _, e := range r.s.vacationEntries {
		if e.AcquisitionPeriodID == id {
			return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodInUse
		}
	}

	p.Status = acquisition.StatusOpen
	p.UpdatedAt = r.s.now()
	r.s.acquisitionPeriods[id] = p
	return p, nil
}
