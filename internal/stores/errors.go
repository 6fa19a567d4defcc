package stores

import (
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

const (
	codeInternalIndexProvisionFailed      = "STO_9000"
	codeInternalCollectionProvisionFailed = "STO_9001"
)

// errInternalIndexProvisionFailed returns an error when the storage index cannot be checked or created.
func errInternalIndexProvisionFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalIndexProvisionFailed, fmt.Errorf("indexProvisionFailed: %w", cause))
}

// errInternalCollectionProvisionFailed returns an error when a probe collection cannot be created.
func errInternalCollectionProvisionFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCollectionProvisionFailed, fmt.Errorf("collectionProvisionFailed: %w", cause))
}
