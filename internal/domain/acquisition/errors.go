package acquisition

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
)

var (
	ErrAcquisitionPeriodNotFound = fmt.Errorf("%w: acquisition period not found", apperror.ErrNotFound)
	ErrNoAcquisitionPeriod       = fmt.Errorf("%w: no acquisition period selected, assign an acquisition period first", apperror.ErrPrecondition)
	ErrPeriodNotOpen             = fmt.Errorf("%w: acquisition period is not open", apperror.ErrInvalidState)
	ErrPeriodNotUsed             = fmt.Errorf("%w: acquisition period is not used", apperror.ErrInvalidState)
	ErrPeriodNotClosed           = fmt.Errorf("%w: acquisition period is not closed", apperror.ErrInvalidState)
	ErrPeriodAlreadyClosed       = fmt.Errorf("%w: acquisition period is already closed", apperror.ErrInvalidState)
	ErrPeriodInUse               = fmt.Errorf("%w: acquisition period is referenced by a vacation entry, remove that entry first", apperror.ErrConflict)
)
