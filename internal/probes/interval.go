package probes

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// NoInterval is the marker value for probes that flush on every update.
const NoInterval = "none"

var intervalPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)\s*([a-z]*)$`)

var intervalUnits = map[string]int64{
	"":             1,
	"ms":           1,
	"msec":         1,
	"msecs":        1,
	"millisecond":  1,
	"milliseconds": 1,
	"s":            1000,
	"sec":          1000,
	"secs":         1000,
	"second":       1000,
	"seconds":      1000,
	"m":            60 * 1000,
	"min":          60 * 1000,
	"mins":         60 * 1000,
	"minute":       60 * 1000,
	"minutes":      60 * 1000,
	"h":            60 * 60 * 1000,
	"hr":           60 * 60 * 1000,
	"hrs":          60 * 60 * 1000,
	"hour":         60 * 60 * 1000,
	"hours":        60 * 60 * 1000,
	"d":            24 * 60 * 60 * 1000,
	"day":          24 * 60 * 60 * 1000,
	"days":         24 * 60 * 60 * 1000,
	"w":            7 * 24 * 60 * 60 * 1000,
	"week":         7 * 24 * 60 * 60 * 1000,
	"weeks":        7 * 24 * 60 * 60 * 1000,
	"y":            31557600000, // 365.25 days
	"yr":           31557600000,
	"yrs":          31557600000,
	"year":         31557600000,
	"years":        31557600000,
}

const maxIntervalMs = math.MaxInt64 / int64(time.Millisecond)

// ParseInterval converts a raw interval into a duration. A nil value or the
// "none" marker yields 0 (no interval). Integers are milliseconds; strings are
// either milliseconds or a number followed by a unit ("10s", "1.5h",
// "2 days"), or a Go duration ("1h30m"). The result must be a positive whole
// number of milliseconds: zero, negative and fractional values are rejected.
func ParseInterval(raw any) (time.Duration, error) {
	switch value := raw.(type) {
	case nil:
		return 0, nil
	case string:
		return parseIntervalString(value)
	case json.Number:
		ms, ok := new(big.Rat).SetString(value.String())
		if !ok {
			return 0, invalidInterval(raw, "not a number")
		}
		return intervalFromMs(raw, ms)
	case int:
		return intervalFromMs(raw, new(big.Rat).SetInt64(int64(value)))
	case int64:
		return intervalFromMs(raw, new(big.Rat).SetInt64(value))
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, invalidInterval(raw, "not a finite number")
		}
		return intervalFromMs(raw, new(big.Rat).SetFloat64(value))
	default:
		return 0, invalidInterval(raw, fmt.Sprintf("unsupported type %T", raw))
	}
}

func parseIntervalString(raw string) (time.Duration, error) {
	text := strings.TrimSpace(raw)
	if strings.EqualFold(text, NoInterval) {
		return 0, nil
	}

	if match := intervalPattern.FindStringSubmatch(text); match != nil {
		factor, ok := intervalUnits[strings.ToLower(match[2])]
		if !ok {
			return 0, invalidInterval(raw, fmt.Sprintf("unknown unit %q", match[2]))
		}
		amount, ok := new(big.Rat).SetString(match[1])
		if !ok {
			return 0, invalidInterval(raw, "not a number")
		}
		return intervalFromMs(raw, amount.Mul(amount, new(big.Rat).SetInt64(factor)))
	}

	duration, err := time.ParseDuration(text)
	if err != nil {
		return 0, invalidInterval(raw, "not a duration")
	}
	if duration%time.Millisecond != 0 {
		return 0, invalidInterval(raw, "not a whole number of milliseconds")
	}
	return intervalFromMs(raw, new(big.Rat).SetInt64(duration.Milliseconds()))
}

func intervalFromMs(raw any, ms *big.Rat) (time.Duration, error) {
	if !ms.IsInt() {
		return 0, invalidInterval(raw, "not a whole number of milliseconds")
	}
	if ms.Sign() <= 0 {
		return 0, invalidInterval(raw, "must be positive")
	}
	if !ms.Num().IsInt64() || ms.Num().Int64() > maxIntervalMs {
		return 0, invalidInterval(raw, "too long")
	}
	return time.Duration(ms.Num().Int64()) * time.Millisecond, nil
}

func invalidInterval(raw any, reason string) *InvalidIntervalError {
	return &InvalidIntervalError{Value: raw, Reason: reason}
}
