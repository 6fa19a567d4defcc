package aggregators

import (
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

const (
	codeProbeNotFound = "AGG_1000"

	codeInternalMatcherFailed = "AGG_9000"
)

// errProbeNotFound returns an error when no active probe has the given name.
func errProbeNotFound(name string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeProbeNotFound, fmt.Sprintf("probe %q not found", name), nil)
}

// errInternalMatcherFailed returns an error when the matcher cannot test a document.
func errInternalMatcherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalMatcherFailed, fmt.Errorf("matcherFailed: %w", cause))
}
