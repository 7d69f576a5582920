package overtime

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
)

var (
	ErrOvertimeEntryNotFound = fmt.Errorf("%w: overtime entry not found", apperror.ErrNotFound)
	ErrDuplicateMonth        = fmt.Errorf("%w: an overtime entry already exists for this employee and month in the budget period", apperror.ErrConflict)
)
