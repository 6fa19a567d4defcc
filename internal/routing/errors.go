package routing

import (
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

const (
	codeFilterRegistrationFailed = "RTE_1000"
)

// errFilterRegistrationFailed returns an error when the matcher refuses a
// watcher or sampler filter. The probe is left out of the table.
func errFilterRegistrationFailed(probe string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeFilterRegistrationFailed, fmt.Sprintf("probe %q filter registration failed", probe), cause)
}
