package matchers

import (
	"errors"
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

var ErrInvalidFilter = errors.New("invalid filter")

const (
	codeInvalidFilter = "MAT_1000"
)

// errInvalidFilter returns an error when a filter cannot be compiled.
func errInvalidFilter(format string, args ...any) *svcerrors.ServiceError {
	cause := fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
	return svcerrors.NewInvalidArgumentError(codeInvalidFilter, "invalid filter", cause)
}
