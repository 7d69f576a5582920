package vacation

import "context"

type VacationEntryRepository interface {
	// Create returns ErrAcquisitionPeriodTaken when the acquisition period is already referenced.
	Create(ctx context.Context, entry VacationEntry) (VacationEntry, error)
	GetByID(ctx context.Context, id string) (VacationEntry, error)
	List(ctx context.Context, filter Filter) ([]VacationEntry, error)
	Delete(ctx context.Context, id string) error
	// UpdateStatus moves the entry from -> to; ErrInvalidStatusTransition when the
	// stored status is not from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (VacationEntry, error)
}
