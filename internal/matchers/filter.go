package matchers

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/fieldpaths"
)

// Filter operators. A filter is either the empty object, which matches every
// document, or an object with exactly one operator key:
//
//	{"equals": {"status": "active"}}
//	{"in": {"status": ["active", "pending"]}}
//	{"exists": "user.email"}  or  {"exists": {"field": "user.email"}}
//	{"range": {"age": {"gte": 18, "lt": 65}}}
//	{"and": [filter, ...]}, {"or": [filter, ...]}, {"not": filter}
//
// Field names are dotted paths into the document body. "_id" refers to the
// document identifier.
const (
	opEquals = "equals"
	opIn     = "in"
	opExists = "exists"
	opRange  = "range"
	opAnd    = "and"
	opOr     = "or"
	opNot    = "not"
)

type document struct {
	id   string
	body map[string]any
}

func (d document) field(path string) (any, bool) {
	if path == models.FieldID {
		return d.id, d.id != ""
	}
	return fieldpaths.Get(d.body, path)
}

type predicate func(doc document) bool

func matchAll(document) bool { return true }

func compileFilter(filter map[string]any) (predicate, error) {
	if len(filter) == 0 {
		return matchAll, nil
	}
	if len(filter) != 1 {
		return nil, errInvalidFilter("expected exactly one operator, got %d", len(filter))
	}

	for operator, operand := range filter {
		switch operator {
		case opEquals:
			return compileEquals(operand)
		case opIn:
			return compileIn(operand)
		case opExists:
			return compileExists(operand)
		case opRange:
			return compileRange(operand)
		case opAnd, opOr:
			return compileBoolean(operator, operand)
		case opNot:
			object, ok := operand.(map[string]any)
			if !ok {
				return nil, errInvalidFilter("not: expected a filter object")
			}
			inner, err := compileFilter(object)
			if err != nil {
				return nil, err
			}
			return func(doc document) bool { return !inner(doc) }, nil
		default:
			return nil, errInvalidFilter("unknown operator %q", operator)
		}
	}
	return nil, errInvalidFilter("empty filter")
}

// singleField unpacks {"<field>": <value>} operands.
func singleField(operator string, operand any) (string, any, error) {
	object, ok := operand.(map[string]any)
	if !ok || len(object) != 1 {
		return "", nil, errInvalidFilter("%s: expected an object with exactly one field", operator)
	}
	for field, value := range object {
		if field == "" {
			return "", nil, errInvalidFilter("%s: empty field name", operator)
		}
		return field, value, nil
	}
	return "", nil, errInvalidFilter("%s: empty operand", operator)
}

func compileEquals(operand any) (predicate, error) {
	field, expected, err := singleField(opEquals, operand)
	if err != nil {
		return nil, err
	}
	if !isScalar(expected) {
		return nil, errInvalidFilter("equals: value of %q must be a scalar", field)
	}
	return func(doc document) bool {
		value, found := doc.field(field)
		return found && scalarEqual(value, expected)
	}, nil
}

func compileIn(operand any) (predicate, error) {
	field, rawValues, err := singleField(opIn, operand)
	if err != nil {
		return nil, err
	}
	values, ok := rawValues.([]any)
	if !ok || len(values) == 0 {
		return nil, errInvalidFilter("in: values of %q must be a non-empty array", field)
	}
	for _, value := range values {
		if !isScalar(value) {
			return nil, errInvalidFilter("in: values of %q must be scalars", field)
		}
	}
	return func(doc document) bool {
		value, found := doc.field(field)
		if !found {
			return false
		}
		for _, expected := range values {
			if scalarEqual(value, expected) {
				return true
			}
		}
		return false
	}, nil
}

func compileExists(operand any) (predicate, error) {
	var field string
	switch typed := operand.(type) {
	case string:
		field = typed
	case map[string]any:
		field, _ = typed["field"].(string)
		if len(typed) != 1 {
			field = ""
		}
	}
	if field == "" {
		return nil, errInvalidFilter(`exists: expected a field path or {"field": path}`)
	}
	return func(doc document) bool {
		_, found := doc.field(field)
		return found
	}, nil
}

type bound struct {
	operator string
	limit    float64
}

func compileRange(operand any) (predicate, error) {
	field, rawBounds, err := singleField(opRange, operand)
	if err != nil {
		return nil, err
	}
	object, ok := rawBounds.(map[string]any)
	if !ok || len(object) == 0 {
		return nil, errInvalidFilter("range: bounds of %q must be a non-empty object", field)
	}

	operators := make([]string, 0, len(object))
	for operator := range object {
		operators = append(operators, operator)
	}
	sort.Strings(operators)

	bounds := make([]bound, 0, len(object))
	for _, operator := range operators {
		switch operator {
		case "gt", "gte", "lt", "lte":
		default:
			return nil, errInvalidFilter("range: unknown bound %q", operator)
		}
		limit, ok := toFloat(object[operator])
		if !ok {
			return nil, errInvalidFilter("range: bound %q of %q must be a number", operator, field)
		}
		bounds = append(bounds, bound{operator: operator, limit: limit})
	}

	return func(doc document) bool {
		raw, found := doc.field(field)
		if !found {
			return false
		}
		value, ok := toFloat(raw)
		if !ok {
			return false
		}
		for _, b := range bounds {
			if !b.satisfied(value) {
				return false
			}
		}
		return true
	}, nil
}

func (b bound) satisfied(value float64) bool {
	switch b.operator {
	case "gt":
		return value > b.limit
	case "gte":
		return value >= b.limit
	case "lt":
		return value < b.limit
	default:
		return value <= b.limit
	}
}

func compileBoolean(operator string, operand any) (predicate, error) {
	list, ok := operand.([]any)
	if !ok || len(list) == 0 {
		return nil, errInvalidFilter("%s: expected a non-empty array of filters", operator)
	}
	children := make([]predicate, 0, len(list))
	for _, item := range list {
		object, ok := item.(map[string]any)
		if !ok {
			return nil, errInvalidFilter("%s: expected filter objects", operator)
		}
		child, err := compileFilter(object)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if operator == opAnd {
		return func(doc document) bool {
			for _, child := range children {
				if !child(doc) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(doc document) bool {
		for _, child := range children {
			if child(doc) {
				return true
			}
		}
		return false
	}, nil
}

func isScalar(value any) bool {
	switch value.(type) {
	case nil, string, bool, json.Number, float64, float32, int, int64:
		return true
	}
	return false
}

func scalarEqual(actual, expected any) bool {
	if expectedNumber, ok := toFloat(expected); ok {
		actualNumber, ok := toFloat(actual)
		return ok && actualNumber == expectedNumber
	}
	switch expectedValue := expected.(type) {
	case nil:
		return actual == nil
	case string:
		actualValue, ok := actual.(string)
		return ok && actualValue == expectedValue
	case bool:
		actualValue, ok := actual.(bool)
		return ok && actualValue == expectedValue
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch number := value.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(number.String()), 64)
		return parsed, err == nil && !math.IsInf(parsed, 0)
	case float64:
		return number, !math.IsNaN(number)
	case float32:
		return float64(number), true
	case int:
		return float64(number), true
	case int64:
		return float64(number), true
	}
	return 0, false
}
