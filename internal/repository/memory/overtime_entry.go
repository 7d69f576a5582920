package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
)

type overtimeEntryRepository struct{ s *Store }

func NewOvertimeEntryRepository(s *Store) overtime.OvertimeEntryRepository {
	return &overtimeEntryRepository{s: s}
}

func (r *overtimeEntryRepository) CreateBatch(ctx context.Context, entries []overtime.OvertimeEntry) ([]overtime.OvertimeEntry, error) {
	defer r.s.lock(ctx)()

	type slot struct {
		employeeID, budgetPeriodID string
		month                      int
	}
	taken := make(map[slot]bool, len(r.s.overtimeEntries)+len(entries))
	for _, e := range r.s.overtimeEntries {
		taken[slot{e.EmployeeID, e.BudgetPeriodID, e.Month}] = true
	}
	for _, e := range entries {
		k := slot{e.EmployeeID, e.BudgetPeriodID, e.Month}
		if taken[k] {
			return nil, fmt.Errorf("month %d: %w", e.Month, overtime.ErrDuplicateMonth)
		}
		taken[k] = true
	}

	now := r.s.now()
	created := make([]overtime.OvertimeEntry, 0, len(entries))
	for _, e := range entries {
		e.ID = newID()
		e.CreatedAt = now
		e.UpdatedAt = now
		r.s.overtimeEntries[e.ID] = e
		created = append(created, e)
	}
	return created, nil
}

func (r *overtimeEntryRepository) GetByID(ctx context.Context, id string) (overtime.OvertimeEntry, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.overtimeEntries[id]
	if !ok {
		return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
	}
	return e, nil
}

func (r *overtimeEntryRepository) List(ctx context.Context, filter overtime.Filter) ([]overtime.OvertimeEntry, error) {
	defer r.s.lock(ctx)()

	entries := make([]overtime.OvertimeEntry, 0)
	for _, e := range r.s.overtimeEntries {
		if e.CompanyID != filter.CompanyID ||
			(filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID) ||
			(filter.Year != nil && e.Year != *filter.Year) {
			continue
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b overtime.OvertimeEntry) int {
		return cmp.Or(
			cmp.Compare(b.Year, a.Year),
			cmp.Compare(a.Month, b.Month),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})
	return entries, nil
}

func (r *overtimeEntryRepository) Update(ctx context.Context, e overtime.OvertimeEntry) (overtime.OvertimeEntry, error) {
	defer r.s.lock(ctx)()

	current, ok := r.s.overtimeEntries[e.ID]
	if !ok {
		return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
	}

	current.Quantities = e.Quantities
	current.Values = e.Values
	current.ReferenceAmount = e.ReferenceAmount
	current.Variance = e.Variance
	current.VariancePercentage = e.VariancePercentage
	current.UpdatedAt = r.s.now()
	r.s.overtimeEntries[e.ID] = current
	return current, nil
}

func (r *overtimeEntryRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.overtimeEntries[id]; !ok {
		return overtime.ErrOvertimeEntryNotFound
	}
	delete(r.s.overtimeEntries, id)
	return nil
}

func (r *overtimeEntryRepository) TotalForEmployeeMonth(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()

	total := decimal.Zero
	for _, e := range r.s.overtimeEntries {
		if e.EmployeeID == employeeID && e.Year == year && e.Month == month {
			total = total.Add(e.Values.Total)
		}
	}
	return total, nil
}
