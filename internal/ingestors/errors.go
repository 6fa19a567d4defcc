package ingestors

import (
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed = "ING_1000"

	codeInternalEnvelopeProducerFailed = "ING_9000"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalEnvelopeProducerFailed returns an error when an envelope cannot be published to the stream.
func errInternalEnvelopeProducerFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEnvelopeProducerFailed, fmt.Errorf("envelopeProducerFailed: %w", cause))
}
