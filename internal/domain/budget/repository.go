package budget

import (
	"context"
	"time"
)

// BudgetPeriodRepository persists budget periods. Every state transition is a
// conditional write so concurrent requests cannot both pass the same check.
type BudgetPeriodRepository interface {
	// Create inserts an open period; ErrOpenPeriodExists when the company already has one.
	Create(ctx context.Context, period BudgetPeriod) (BudgetPeriod, error)
	GetByID(ctx context.Context, id string) (BudgetPeriod, error)
	ListByCompany(ctx context.Context, companyID string) ([]BudgetPeriod, error)
	// GetOpenByCompany returns ErrNoOpenPeriod when the company has no open period.
	GetOpenByCompany(ctx context.Context, companyID string) (BudgetPeriod, error)

	// LockOpenByCompany and LockByID hold a share lock on the row until the
	// surrounding transaction ends, blocking a concurrent close.
	LockOpenByCompany(ctx context.Context, companyID string) (BudgetPeriod, error)
	LockByID(ctx context.Context, id string) (BudgetPeriod, error)

	// Close moves open -> closed; ErrPeriodNotOpen otherwise.
	Close(ctx context.Context, id string, closedBy string, closedAt time.Time) (BudgetPeriod, error)
	// Reopen moves closed -> open clearing the close audit fields; ErrPeriodNotClosed
	// otherwise and ErrOpenPeriodExists when another period of the company is open.
	Reopen(ctx context.Context, id string) (BudgetPeriod, error)
	// Update writes business fields unless the stored period is closed (ErrPeriodClosed).
	Update(ctx context.Context, period BudgetPeriod) (BudgetPeriod, error)
}

// ActivePeriodCache caches the open period per company for the active-period lookup.
// It is a read hint only; gating always reads storage under lock.
type ActivePeriodCache interface {
	Get(ctx context.Context, companyID string) (BudgetPeriod, bool, error)
	Set(ctx context.Context, period BudgetPeriod) error
	Invalidate(ctx context.Context, companyID string) error
}
