package vacation

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
)

var (
	ErrVacationEntryNotFound   = fmt.Errorf("%w: vacation entry not found", apperror.ErrNotFound)
	ErrAcquisitionPeriodTaken  = fmt.Errorf("%w: acquisition period already has a vacation entry", apperror.ErrConflict)
	ErrInvalidStatusTransition = fmt.Errorf("%w: vacation status can only move forward scheduled -> approved -> taken", apperror.ErrInvalidState)
)
