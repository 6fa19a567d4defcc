package fieldpaths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Parallel()

	body := map[string]any{
		"foo": map[string]any{"bar": "bar", "nested": map[string]any{"deep": 1}},
		"str": "value",
	}

	tests := []struct {
		name   string
		path   string
		want   any
		wantOk bool
	}{
		{name: "top level", path: "str", want: "value", wantOk: true},
		{name: "nested", path: "foo.bar", want: "bar", wantOk: true},
		{name: "deeply nested", path: "foo.nested.deep", want: 1, wantOk: true},
		{name: "missing leaf", path: "foo.qux", wantOk: false},
		{name: "through scalar", path: "str.length", wantOk: false},
		{name: "missing root", path: "nope", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Get(body, tt.path)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_ReconstructsNesting(t *testing.T) {
	t.Parallel()

	out := map[string]any{}
	Set(out, "foo.baz", "baz")
	Set(out, "foo.qux", "qux")
	Set(out, "top", 1)

	assert.Equal(t, map[string]any{
		"foo": map[string]any{"baz": "baz", "qux": "qux"},
		"top": 1,
	}, out)
}

func TestSet_ReplacesScalarIntermediate(t *testing.T) {
	t.Parallel()

	out := map[string]any{"foo": "scalar"}
	Set(out, "foo.bar", true)

	assert.Equal(t, map[string]any{"foo": map[string]any{"bar": true}}, out)
}

func TestDeepCopy_IsolatesNestedValues(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"obj":  map[string]any{"a": 1},
		"list": []any{map[string]any{"b": 2}},
	}

	copied := CopyObject(original)
	copied["obj"].(map[string]any)["a"] = 100
	copied["list"].([]any)[0].(map[string]any)["b"] = 200

	assert.Equal(t, 1, original["obj"].(map[string]any)["a"])
	assert.Equal(t, 2, original["list"].([]any)[0].(map[string]any)["b"])
	assert.Nil(t, CopyObject(nil))
}
