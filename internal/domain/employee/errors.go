package employee

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
)

var (
	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", apperror.ErrNotFound)
)
