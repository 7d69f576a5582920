package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
)

type budgetPeriodRepository struct{ s *Store }

func NewBudgetPeriodRepository(s *Store) budget.BudgetPeriodRepository {
	return &budgetPeriodRepository{s: s}
}

func (r *budgetPeriodRepository) openFor(companyID string) (budget.BudgetPeriod, bool) {
	for _, p := range r.s.budgetPeriods {
		if p.CompanyID == companyID && p.IsOpen() {
			return p, true
		}
	}
	return budget.BudgetPeriod{}, false
}

func (r *budgetPeriodRepository) Create(ctx context.Context, p budget.BudgetPeriod) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	if _, exists := r.openFor(p.CompanyID); exists {
		return budget.BudgetPeriod{}, budget.ErrOpenPeriodExists
	}

	now := r.s.now()
	p.ID = newID()
	p.Status = budget.StatusOpen
	p.ClosedBy = nil
	p.ClosedAt = nil
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.budgetPeriods[p.ID] = p
	return p, nil
}

func (r *budgetPeriodRepository) GetByID(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.budgetPeriods[id]
	if !ok {
		return budget.BudgetPeriod{}, budget.ErrBudgetPeriodNotFound
	}
	return p, nil
}

// LockByID reads the period; the store mutex already excludes a concurrent close.
func (r *budgetPeriodRepository) LockByID(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	return r.GetByID(ctx, id)
}

func (r *budgetPeriodRepository) GetOpenByCompany(ctx context.Context, companyID string) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.openFor(companyID)
	if !ok {
		return budget.BudgetPeriod{}, budget.ErrNoOpenPeriod
	}
	return p, nil
}

func (r *budgetPeriodRepository) LockOpenByCompany(ctx context.Context, companyID string) (budget.BudgetPeriod, error) {
	return r.GetOpenByCompany(ctx, companyID)
}

func (r *budgetPeriodRepository) ListByCompany(ctx context.Context, companyID string) ([]budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	periods := make([]budget.BudgetPeriod, 0)
	for _, p := range r.s.budgetPeriods {
		if p.CompanyID == companyID {
			periods = append(periods, p)
		}
	}
	slices.SortFunc(periods, func(a, b budget.BudgetPeriod) int {
		if a.Year != b.Year {
			return b.Year - a.Year
		}
		return b.StartDate.Compare(a.StartDate)
	})
	return periods, nil
}

func (r *budgetPeriodRepository) Close(ctx context.Context, id string, closedBy string, closedAt time.Time) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.budgetPeriods[id]
	if !ok {
		return budget.BudgetPeriod{}, budget.ErrBudgetPeriodNotFound
	}
	if !p.IsOpen() {
		return budget.BudgetPeriod{}, budget.ErrPeriodNotOpen
	}

	p.Status = budget.StatusClosed
	p.ClosedBy = &closedBy
	p.ClosedAt = &closedAt
	p.UpdatedAt = r.s.now()
	r.s.budgetPeriods[id] = p
	return p, nil
}

func (r *budgetPeriodRepository) Reopen(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.budgetPeriods[id]
	if !ok {
		return budget.BudgetPeriod{}, budget.ErrBudgetPeriodNotFound
	}
	if !p.IsClosed() {
		return budget.BudgetPeriod{}, budget.ErrPeriodNotClosed
	}
	if _, exists := r.openFor(p.CompanyID); exists {
		return budget.BudgetPeriod{}, budget.ErrOpenPeriodExists
	}

	p.Status = budget.StatusOpen
	p.ClosedBy = nil
	p.ClosedAt = nil
	p.UpdatedAt = r.s.now()
	r.s.budgetPeriods[id] = p
	return p, nil
}

func (r *budgetPeriodRepository) Update(ctx context.Context, p budget.BudgetPeriod) (budget.BudgetPeriod, error) {
	defer r.s.lock(ctx)()

	current, ok := r.s.budgetPeriods[p.ID]
	if !ok {
		return budget.BudgetPeriod{}, budget.ErrBudgetPeriodNotFound
	}
	if current.IsClosed() {
		return budget.BudgetPeriod{}, budget.ErrPeriodClosed
	}

	current.Year = p.Year
	current.StartDate = p.StartDate
	current.EndDate = p.EndDate
	current.Description = p.Description
	current.UpdatedAt = r.s.now()
	r.s.budgetPeriods[p.ID] = current
	return current, nil
}
