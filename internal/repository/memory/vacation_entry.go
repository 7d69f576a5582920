package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
)

type vacationEntryRepository struct{ s *Store }

func NewVacationEntryRepository(s *Store) vacation.VacationEntryRepository {
	return &vacationEntryRepository{s: s}
}

func (r *vacationEntryRepository) Create(ctx context.Context, e vacation.VacationEntry) (vacation.VacationEntry, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.vacationEntries {
		if existing.AcquisitionPeriodID == e.AcquisitionPeriodID {
			return vacation.VacationEntry{}, vacation.ErrAcquisitionPeriodTaken
		}
	}

	now := r.s.now()
	e.ID = newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.s.vacationEntries[e.ID] = e
	return e, nil
}

func (r *vacationEntryRepository) GetByID(ctx context.Context, id string) (vacation.VacationEntry, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.vacationEntries[id]
	if !ok {
		return vacation.VacationEntry{}, vacation.ErrVacationEntryNotFound
	}
	return e, nil
}

func (r *vacationEntryRepository) List(ctx context.Context, filter vacation.Filter) ([]vacation.VacationEntry, error) {
	defer r.s.lock(ctx)()

	entries := make([]vacation.VacationEntry, 0)
	for _, e := range r.s.vacationEntries {
		if e.CompanyID != filter.CompanyID || (filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID) {
			continue
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b vacation.VacationEntry) int {
		return cmp.Or(
			cmp.Compare(b.Year, a.Year),
			cmp.Compare(a.Month, b.Month),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})
	return entries, nil
}

func (r *vacationEntryRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.vacationEntries[id]; !ok {
		return vacation.ErrVacationEntryNotFound
	}
	delete(r.s.vacationEntries, id)
	return nil
}

func (r *vacationEntryRepository) UpdateStatus(ctx context.Context, id string, from, to vacation.Status) (vacation.VacationEntry, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.vacationEntries[id]
	if !ok {
		return vacation.VacationEntry{}, vacation.ErrVacationEntryNotFound
	}
	if e.Status != from {
		return vacation.VacationEntry{}, vacation.ErrInvalidStatusTransition
	}

	e.Status = to
	e.UpdatedAt = r.s.now()
	r.s.vacationEntries[id] = e
	return e, nil
}
