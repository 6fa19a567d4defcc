package probes

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"sort"
	"strings"

	"probe-metrics/internal/models"
)

// Policy decides what an invalid probe does to the rest of the configuration.
type Policy string

const (
	// PolicyDrop rejects the offending probe and keeps compiling the others.
	PolicyDrop Policy = "drop"
	// PolicyStrict fails the whole compilation on the first invalid probe.
	PolicyStrict Policy = "strict"
)

// CompileResult holds the probes that passed validation, sorted by name, and
// the errors of the probes that were dropped.
type CompileResult struct {
	Probes   []*models.Probe
	Rejected []error
}

//go:generate mockgen -source=compiler.go -destination=./mocks/compiler_mock.go -package=mocks
type Compiler interface {
	// Compile validates raw probe definitions keyed by probe name.
	Compile(raw map[string]any) (*CompileResult, error)
}

type compiler struct {
	policy Policy
}

func NewCompiler(policy Policy) Compiler {
	return &compiler{policy: policy}
}

func (c *compiler) Compile(raw map[string]any) (*CompileResult, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &CompileResult{Probes: make([]*models.Probe, 0, len(names))}
	for _, name := range names {
		probe, err := compileProbe(name, raw[name])
		if err != nil {
			svcErr := errProbeRejected(name, err)
			if c.policy == PolicyStrict {
				return nil, svcErr
			}
			result.Rejected = append(result.Rejected, svcErr)
			continue
		}
		result.Probes = append(result.Probes, probe)
	}
	return result, nil
}

func compileProbe(name string, raw any) (*models.Probe, error) {
	definition, ok := raw.(map[string]any)
	if !ok {
		return nil, detail(ErrInvalidProbe, "got %T", raw)
	}

	typeName, _ := definition["type"].(string)
	probeType := models.ProbeType(typeName)
	if !probeType.Valid() {
		return nil, detail(ErrMissingType, "type %v", definition["type"])
	}

	probe := &models.Probe{Name: name}

	if rawVolatile, present := definition["volatile"]; present && rawVolatile != nil {
		volatile, ok := rawVolatile.(bool)
		if !ok {
			return nil, detail(ErrInvalidVolatile, "got %v", rawVolatile)
		}
		probe.Volatile = volatile
	}

	rawInterval := definition["interval"]
	if probeType == models.ProbeSampler && isNoInterval(rawInterval) {
		return nil, ErrMissingSamplerInterval
	}
	interval, err := ParseInterval(rawInterval)
	if err != nil {
		var intervalErr *InvalidIntervalError
		if errors.As(err, &intervalErr) {
			intervalErr.Probe = name
		}
		return nil, err
	}
	probe.Interval = interval

	switch probeType {
	case models.ProbeMonitor:
		probe.Spec, err = compileMonitor(definition)
	case models.ProbeCounter:
		probe.Spec, err = compileCounter(definition)
	case models.ProbeWatcher:
		probe.Spec, err = compileWatcher(definition)
	case models.ProbeSampler:
		probe.Spec, err = compileSampler(definition)
	}
	if err != nil {
		return nil, err
	}
	return probe, nil
}

func isNoInterval(raw any) bool {
	if raw == nil {
		return true
	}
	text, ok := raw.(string)
	return ok && strings.EqualFold(strings.TrimSpace(text), NoInterval)
}

func compileMonitor(definition map[string]any) (models.ProbeSpec, error) {
	hooks, ok := stringList(definition["hooks"])
	if !ok || len(hooks) == 0 {
		return nil, detail(ErrInvalidHooks, "got %v", definition["hooks"])
	}
	return models.MonitorSpec{Hooks: hooks}, nil
}

func compileCounter(definition map[string]any) (models.ProbeSpec, error) {
	increasers, okIncreasers := stringList(definition["increasers"])
	decreasers, okDecreasers := stringList(definition["decreasers"])
	if !okIncreasers || !okDecreasers {
		return nil, ErrMissingCounterEvents
	}
	if len(increasers) == 0 && len(decreasers) == 0 {
		return nil, detail(ErrMissingCounterEvents, "both lists are empty")
	}

	decreasing := make(map[string]struct{}, len(decreasers))
	for _, event := range decreasers {
		decreasing[event] = struct{}{}
	}
	var conflicts []string
	for _, event := range increasers {
		if _, found := decreasing[event]; found {
			conflicts = append(conflicts, event)
		}
	}
	if len(conflicts) > 0 {
		return nil, detail(ErrConflictingCounterEvents, "%s", strings.Join(conflicts, ", "))
	}
	return models.CounterSpec{Increasers: increasers, Decreasers: decreasers}, nil
}

func compileWatcher(definition map[string]any) (models.ProbeSpec, error) {
	target, err := compileTarget(definition)
	if err != nil {
		return nil, err
	}
	collects, present, err := compileCollects(definition)
	if err != nil {
		return nil, err
	}
	if !present {
		collects = models.Collects{Mode: models.CollectNothing}
	}
	mapping, err := compileMapping(definition)
	if err != nil {
		return nil, err
	}
	return models.WatcherSpec{Target: target, Collects: collects, Mapping: mapping}, nil
}

func compileSampler(definition map[string]any) (models.ProbeSpec, error) {
	target, err := compileTarget(definition)
	if err != nil {
		return nil, err
	}
	collects, present, err := compileCollects(definition)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, ErrMissingCollects
	}
	sampleSize, ok := positiveInt(definition["sampleSize"])
	if !ok {
		return nil, detail(ErrInvalidSampleSize, "got %v", definition["sampleSize"])
	}
	mapping, err := compileMapping(definition)
	if err != nil {
		return nil, err
	}
	return models.SamplerSpec{Target: target, Collects: collects, SampleSize: sampleSize, Mapping: mapping}, nil
}

func compileTarget(definition map[string]any) (models.Target, error) {
	index, _ := definition["index"].(string)
	collection, _ := definition["collection"].(string)
	if strings.TrimSpace(index) == "" || strings.TrimSpace(collection) == "" {
		return models.Target{}, ErrMissingTarget
	}

	filter := map[string]any{}
	if rawFilter, present := definition["filter"]; present && rawFilter != nil {
		object, ok := rawFilter.(map[string]any)
		if !ok {
			return models.Target{}, detail(ErrInvalidFilter, "got %T", rawFilter)
		}
		filter = object
	}
	return models.Target{Index: index, Collection: collection, Filter: filter}, nil
}

// compileCollects reports present=false when collects is absent or resolves
// to "nothing" (an empty list).
func compileCollects(definition map[string]any) (collects models.Collects, present bool, err error) {
	raw, found := definition["collects"]
	if !found || raw == nil {
		return models.Collects{}, false, nil
	}

	if text, ok := raw.(string); ok {
		if text != models.CollectWildcard {
			return models.Collects{}, false, detail(ErrInvalidCollects, "got %q", text)
		}
		return models.Collects{Mode: models.CollectAll}, true, nil
	}

	if _, isList := raw.([]any); !isList {
		if _, isStrings := raw.([]string); !isStrings {
			return models.Collects{}, false, detail(ErrInvalidCollects, "got %T", raw)
		}
	}
	fields, ok := stringList(raw)
	if !ok {
		return models.Collects{}, false, detail(ErrInvalidCollects, "got %v", raw)
	}
	if len(fields) == 0 {
		return models.Collects{}, false, nil
	}
	return models.Collects{Mode: models.CollectFields, Fields: fields}, true, nil
}

func compileMapping(definition map[string]any) (map[string]any, error) {
	raw, present := definition["mapping"]
	if !present || raw == nil {
		return nil, nil
	}
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, detail(ErrInvalidMapping, "got %T", raw)
	}
	return mapping, nil
}

// stringList converts a list of non-empty strings, removing duplicates while
// keeping the first occurrence order.
func stringList(raw any) ([]string, bool) {
	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []string:
		items = make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
	default:
		return nil, false
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok || text == "" {
			return nil, false
		}
		if _, duplicate := seen[text]; duplicate {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out, true
}

func positiveInt(raw any) (int, bool) {
	var value *big.Rat
	switch number := raw.(type) {
	case json.Number:
		parsed, ok := new(big.Rat).SetString(number.String())
		if !ok {
			return 0, false
		}
		value = parsed
	case int:
		value = new(big.Rat).SetInt64(int64(number))
	case int64:
		value = new(big.Rat).SetInt64(number)
	case float64:
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return 0, false
		}
		value = new(big.Rat).SetFloat64(number)
	default:
		return 0, false
	}
	if !value.IsInt() || value.Sign() <= 0 || !value.Num().IsInt64() || value.Num().Int64() > math.MaxInt32 {
		return 0, false
	}
	return int(value.Num().Int64()), true
}
