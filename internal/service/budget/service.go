package budget

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

type BudgetPeriodServiceImpl struct {
	repo   budget.BudgetPeriodRepository
	cache  budget.ActivePeriodCache
	logger *slog.Logger
	now    func() time.Time

	// active collapses concurrent active-period lookups for the same company.
	active singleflight.Group
	// generations counts invalidations per company; a lookup that started
	// under an older generation must not leave its result in the cache.
	generations sync.Map
}

// NewBudgetPeriodService builds the service. cache may be nil.
func NewBudgetPeriodService(repo budget.BudgetPeriodRepository, cache budget.ActivePeriodCache, logger *slog.Logger) *BudgetPeriodServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetPeriodServiceImpl{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (s *BudgetPeriodServiceImpl) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) Create(ctx context.Context, req budget.CreateBudgetPeriodRequest) (budget.BudgetPeriod, error) {
	if err := req.Validate(); err != nil {
		return budget.BudgetPeriod{}, err
	}

	start, err := calendar.Parse(req.StartDate)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}
	end, err := calendar.Parse(req.EndDate)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	created, err := s.repo.Create(ctx, budget.BudgetPeriod{
		CompanyID:   req.CompanyID,
		Year:        req.Year,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	})
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	s.invalidate(ctx, created.CompanyID)
	s.logger.Info("budget period created", "budget_period_id", created.ID, "company_id", created.CompanyID, "year", created.Year)
	return created, nil
}

// Get implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) Get(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	return s.repo.GetByID(ctx, id)
}

// List implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) List(ctx context.Context, companyID string) ([]budget.BudgetPeriod, error) {
	if validator.IsEmpty(companyID) {
		return nil, validator.ValidationErrors{{Field: "company_id", Message: "company_id is required"}}
	}
	return s.repo.ListByCompany(ctx, companyID)
}

// GetActive implements budget.BudgetPeriodService. The cache only serves this
// lookup; writes that depend on the open period read it from storage under lock.
func (s *BudgetPeriodServiceImpl) GetActive(ctx context.Context, companyID string) (budget.BudgetPeriod, error) {
	if validator.IsEmpty(companyID) {
		return budget.BudgetPeriod{}, validator.ValidationErrors{{Field: "company_id", Message: "company_id is required"}}
	}

	cached, ok, err := s.cache.Get(ctx, companyID)
	if err != nil {
		s.logger.Warn("active period cache read failed", "company_id", companyID, "error", err)
	}
	if ok {
		return cached, nil
	}

	gen := s.generation(companyID)
	seen := gen.Load()
	key := companyID + "/" + strconv.FormatUint(seen, 10)

	// The shared lookup outlives any single caller; each caller waits on its own ctx below.
	shared := context.WithoutCancel(ctx)
	result := s.active.DoChan(key, func() (interface{}, error) {
		period, err := s.repo.GetOpenByCompany(shared, companyID)
		if err != nil {
			return budget.BudgetPeriod{}, err
		}
		if gen.Load() != seen {
			return period, nil
		}
		if err := s.cache.Set(shared, period); err != nil {
			s.logger.Warn("active period cache write failed", "company_id", companyID, "error", err)
		}
		// A close that bumped the generation after the check above may have
		// invalidated before our Set landed.
		if gen.Load() != seen {
			s.invalidateCache(shared, companyID)
		}
		return period, nil
	})

	select {
	case <-ctx.Done():
		return budget.BudgetPeriod{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return budget.BudgetPeriod{}, res.Err
		}
		return res.Val.(budget.BudgetPeriod), nil
	}
}

// Update implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) Update(ctx context.Context, req budget.UpdateBudgetPeriodRequest) (budget.BudgetPeriod, error) {
	if err := req.Validate(); err != nil {
		return budget.BudgetPeriod{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}
	if current.IsClosed() {
		return budget.BudgetPeriod{}, budget.ErrPeriodClosed
	}

	changed, err := req.Apply(current)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	updated, err := s.repo.Update(ctx, changed)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	s.invalidate(ctx, updated.CompanyID)
	s.logger.Info("budget period updated", "budget_period_id", updated.ID)
	return updated, nil
}

// Close implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) Close(ctx context.Context, id string, closedBy string) (budget.BudgetPeriod, error) {
	if validator.IsEmpty(closedBy) {
		return budget.BudgetPeriod{}, validator.ValidationErrors{{Field: "closed_by", Message: "closed_by is required"}}
	}

	closed, err := s.repo.Close(ctx, id, closedBy, s.now())
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	s.invalidate(ctx, closed.CompanyID)
	s.logger.Info("budget period closed", "budget_period_id", closed.ID, "company_id", closed.CompanyID, "closed_by", closedBy)
	return closed, nil
}

// Reopen implements budget.BudgetPeriodService.
func (s *BudgetPeriodServiceImpl) Reopen(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	reopened, err := s.repo.Reopen(ctx, id)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}

	s.invalidate(ctx, reopened.CompanyID)
	s.logger.Info("budget period reopened", "budget_period_id", reopened.ID, "company_id", reopened.CompanyID)
	return reopened, nil
}

func (s *BudgetPeriodServiceImpl) generation(companyID string) *atomic.Uint64 {
	gen, _ := s.generations.LoadOrStore(companyID, new(atomic.Uint64))
	return gen.(*atomic.Uint64)
}

func (s *BudgetPeriodServiceImpl) invalidate(ctx context.Context, companyID string) {
	s.generation(companyID).Add(1)
	s.invalidateCache(ctx, companyID)
}

func (s *BudgetPeriodServiceImpl) invalidateCache(ctx context.Context, companyID string) {
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.logger.Warn("active period cache invalidation failed", "company_id", companyID, "error", err)
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (budget.BudgetPeriod, bool, error) {
	return budget.BudgetPeriod{}, false, nil
}

func (noopCache) Set(context.Context, budget.BudgetPeriod) error { return nil }

func (noopCache) Invalidate(context.Context, string) error { return nil }

var _ budget.BudgetPeriodService = (*BudgetPeriodServiceImpl)(nil)
