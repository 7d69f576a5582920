package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by the kind they wrap.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch apperror.Kind(err) {
	case apperror.ErrNotFound:
		NotFound(w, err.Error())
	case apperror.ErrPrecondition:
		PreconditionFailed(w, err.Error())
	case apperror.ErrInvalidState:
		InvalidState(w, err.Error())
	case apperror.ErrConflict:
		Conflict(w, err.Error())
	case apperror.ErrUnauthorized:
		Unauthorized(w, err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
