package acquisition

import "context"

type AcquisitionPeriodService interface {
	Create(ctx context.Context, req CreateAcquisitionPeriodRequest) (AcquisitionPeriod, error)
	Get(ctx context.Context, id string) (AcquisitionPeriod, error)
	List(ctx context.Context, req ListAcquisitionPeriodsRequest) ([]AcquisitionPeriod, error)
	Close(ctx context.Context, id string) (AcquisitionPeriod, error)
	Reopen(ctx context.Context, id string) (AcquisitionPeriod, error)

	// Consume and Release are called by the vacation service inside its own
	// transaction; they are not exposed over HTTP.
	Consume(ctx context.Context, id string) (AcquisitionPeriod, error)
	Release(ctx context.Context, id string) (AcquisitionPeriod, error)
}
