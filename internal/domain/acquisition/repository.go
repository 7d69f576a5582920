package acquisition

import "context"

// AcquisitionPeriodRepository persists acquisition periods. Transitions are
// conditional writes on the current status.
type AcquisitionPeriodRepository interface {
	Create(ctx context.Context, period AcquisitionPeriod) (AcquisitionPeriod, error)
	GetByID(ctx context.Context, id string) (AcquisitionPeriod, error)
	ListByEmployee(ctx context.Context, employeeID string, status *Status) ([]AcquisitionPeriod, error)

	// Consume moves open -> used; ErrPeriodNotOpen otherwise.
	Consume(ctx context.Context, id string) (AcquisitionPeriod, error)
	// Release moves used -> open; ErrPeriodNotUsed otherwise.
	Release(ctx context.Context, id string) (AcquisitionPeriod, error)
	// Close moves open or used -> closed; ErrPeriodAlreadyClosed otherwise.
	Close(ctx context.Context, id string) (AcquisitionPeriod, error)
	// Reopen moves closed -> open. ErrPeriodInUse when the period is used or a
	// vacation entry still references it; ErrPeriodNotClosed when it is open.
	Reopen(ctx context.Context, id string) (AcquisitionPeriod, error)
}
