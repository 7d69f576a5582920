package overtime

import (
	"context"

	"github.com/shopspring/decimal"
)

type OvertimeEntryRepository interface {
	// CreateBatch inserts all entries or none; ErrDuplicateMonth when an entry for the
	// same employee, budget period and month already exists.
	CreateBatch(ctx context.Context, entries []OvertimeEntry) ([]OvertimeEntry, error)
	GetByID(ctx context.Context, id string) (OvertimeEntry, error)
	List(ctx context.Context, filter Filter) ([]OvertimeEntry, error)
	Update(ctx context.Context, entry OvertimeEntry) (OvertimeEntry, error)
	Delete(ctx context.Context, id string) error
	// TotalForEmployeeMonth sums the stored totals of an employee for year/month.
	TotalForEmployeeMonth(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}
