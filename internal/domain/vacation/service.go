package vacation

import "context"

type VacationService interface {
	// CreateEntry prices the request and stores it, consuming the acquisition period
	// in the same transaction.
	CreateEntry(ctx context.Context, req CreateVacationEntryRequest) (VacationEntry, error)
	Preview(ctx context.Context, req PreviewVacationRequest) (Calculation, error)
	Get(ctx context.Context, id string) (VacationEntry, error)
	List(ctx context.Context, req ListVacationEntriesRequest) ([]VacationEntry, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (VacationEntry, error)
	// DeleteEntry removes the entry and releases its acquisition period.
	DeleteEntry(ctx context.Context, id string) error
}
