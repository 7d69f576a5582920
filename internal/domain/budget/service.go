package budget

import "context"

type BudgetPeriodService interface {
	Create(ctx context.Context, req CreateBudgetPeriodRequest) (BudgetPeriod, error)
	Get(ctx context.Context, id string) (BudgetPeriod, error)
	List(ctx context.Context, companyID string) ([]BudgetPeriod, error)
	// GetActive is the "current active period" lookup used to pre-select the open period.
	GetActive(ctx context.Context, companyID string) (BudgetPeriod, error)
	Update(ctx context.Context, req UpdateBudgetPeriodRequest) (BudgetPeriod, error)
	Close(ctx context.Context, id string, closedBy string) (BudgetPeriod, error)
	Reopen(ctx context.Context, id string) (BudgetPeriod, error)
}
