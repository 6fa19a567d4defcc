package flushers

import (
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

const (
	codeInternalPersistFailed = "FLS_9000"
)

// errInternalPersistFailed returns an error when the measure store rejects a flushed measure.
func errInternalPersistFailed(probe string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPersistFailed, fmt.Errorf("persistFailed(%s): %w", probe, cause))
}
