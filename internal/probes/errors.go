package probes

import (
	"errors"
	"fmt"

	"probe-metrics/internal/shared/svcerrors"
)

// Probe configuration errors. A rejected probe's ServiceError unwraps to one of these.
var (
	ErrInvalidProbe             = errors.New("probe definition must be an object")
	ErrMissingType              = errors.New("missing or unknown probe type")
	ErrInvalidVolatile          = errors.New("volatile must be a boolean")
	ErrInvalidInterval          = errors.New("invalid interval")
	ErrMissingSamplerInterval   = errors.New("sampler probes require an interval")
	ErrInvalidHooks             = errors.New("hooks must be a non-empty list of event names")
	ErrMissingCounterEvents     = errors.New("increasers and decreasers must both be lists of event names")
	ErrConflictingCounterEvents = errors.New("an event cannot both increase and decrease the same counter")
	ErrMissingTarget            = errors.New("index and collection are required")
	ErrInvalidFilter            = errors.New("filter must be an object")
	ErrInvalidCollects          = errors.New(`collects must be "*" or a list of field paths`)
	ErrMissingCollects          = errors.New("sampler probes require collects")
	ErrInvalidSampleSize        = errors.New("sampleSize must be a positive integer")
	ErrInvalidMapping           = errors.New("mapping must be an object")
)

const (
	codeInvalidProbe             = "PRB_1000"
	codeMissingType              = "PRB_1001"
	codeInvalidInterval          = "PRB_1002"
	codeMissingSamplerInterval   = "PRB_1003"
	codeInvalidHooks             = "PRB_1004"
	codeMissingCounterEvents     = "PRB_1005"
	codeConflictingCounterEvents = "PRB_1006"
	codeMissingTarget            = "PRB_1007"
	codeInvalidCollects          = "PRB_1008"
	codeMissingCollects          = "PRB_1009"
	codeInvalidSampleSize        = "PRB_1010"
)

var errorCodes = map[error]string{
	ErrInvalidProbe:             codeInvalidProbe,
	ErrInvalidVolatile:          codeInvalidProbe,
	ErrInvalidFilter:            codeInvalidProbe,
	ErrInvalidMapping:           codeInvalidProbe,
	ErrMissingType:              codeMissingType,
	ErrInvalidInterval:          codeInvalidInterval,
	ErrMissingSamplerInterval:   codeMissingSamplerInterval,
	ErrInvalidHooks:             codeInvalidHooks,
	ErrMissingCounterEvents:     codeMissingCounterEvents,
	ErrConflictingCounterEvents: codeConflictingCounterEvents,
	ErrMissingTarget:            codeMissingTarget,
	ErrInvalidCollects:          codeInvalidCollects,
	ErrMissingCollects:          codeMissingCollects,
	ErrInvalidSampleSize:        codeInvalidSampleSize,
}

// InvalidIntervalError reports an interval value that does not resolve to a
// positive whole number of milliseconds.
type InvalidIntervalError struct {
	Probe  string
	Value  any
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	if e.Probe == "" {
		return fmt.Sprintf("invalid interval %v: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("probe %q: invalid interval %v: %s", e.Probe, e.Value, e.Reason)
}

func (e *InvalidIntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// errProbeRejected wraps a configuration error for probe name. cause must
// unwrap to one of the sentinel errors above.
func errProbeRejected(name string, cause error) *svcerrors.ServiceError {
	code := codeInvalidProbe
	for sentinel, sentinelCode := range errorCodes {
		if errors.Is(cause, sentinel) {
			code = sentinelCode
			break
		}
	}
	return svcerrors.NewInvalidArgumentError(code, fmt.Sprintf("probe %q rejected", name), cause)
}

func detail(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
