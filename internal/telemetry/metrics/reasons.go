package metrics

import (
	"errors"

	"github.com/2beens/bloghub/internal/errs"
)

// RejectionReason maps a write error to the reason label of CounterWriteRejections.
func RejectionReason(err error) string {
	var validationErr *errs.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ReasonValidation
	case errors.Is(err, errs.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, errs.ErrQuotaExceeded):
		return ReasonQuotaExceeded
	case errors.Is(err, errs.ErrDuplicateComment):
		return ReasonDuplicateComment
	default:
		return ReasonStorage
	}
}
