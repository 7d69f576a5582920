package budget

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
)

var (
	ErrBudgetPeriodNotFound = fmt.Errorf("%w: budget period not found", apperror.ErrNotFound)
	ErrOpenPeriodExists     = fmt.Errorf("%w: company already has an open budget period", apperror.ErrConflict)
	ErrNoOpenPeriod         = fmt.Errorf("%w: no open budget period, open a budget period first", apperror.ErrPrecondition)
	ErrPeriodNotOpen        = fmt.Errorf("%w: budget period is not open", apperror.ErrInvalidState)
	ErrPeriodNotClosed      = fmt.Errorf("%w: budget period is not closed", apperror.ErrInvalidState)
	ErrPeriodClosed         = fmt.Errorf("%w: budget period is closed", apperror.ErrInvalidState)
)
