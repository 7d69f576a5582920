package overtime

import "context"

type OvertimeService interface {
	// CreateEntries prices and stores a batch of months against the company's open
	// budget period. Months whose total is zero are skipped.
	CreateEntries(ctx context.Context, req CreateOvertimeEntriesRequest) ([]OvertimeEntry, error)
	Preview(ctx context.Context, req PreviewOvertimeRequest) ([]MonthPreview, error)
	Get(ctx context.Context, id string) (OvertimeEntry, error)
	List(ctx context.Context, req ListOvertimeEntriesRequest) ([]OvertimeEntry, error)
	Update(ctx context.Context, req UpdateOvertimeEntryRequest) (OvertimeEntry, error)
	Delete(ctx context.Context, id string) error
}
