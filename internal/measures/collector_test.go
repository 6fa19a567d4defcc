package measures

import (
	"testing"

	"probe-metrics/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCollect_FieldListKeepsOnlyListedPaths(t *testing.T) {
	t.Parallel()

	doc := models.Document{Body: map[string]any{
		"foobar": "foobar",
		"foo":    map[string]any{"bar": "bar", "baz": "baz", "qux": "qux"},
		"barfoo": "barfoo",
	}}
	collects := models.Collects{Mode: models.CollectFields, Fields: []string{"foobar", "foo.baz", "foo.qux", "barfoo"}}

	got := Collect(collects, doc)

	assert.Equal(t, map[string]any{
		"foobar": "foobar",
		"foo":    map[string]any{"baz": "baz", "qux": "qux"},
		"barfoo": "barfoo",
	}, got)
	assert.NotContains(t, got, models.FieldID, "no id on the document, no _id on the record")
}

func TestCollect(t *testing.T) {
	t.Parallel()

	body := map[string]any{
		"a": map[string]any{"b": []any{1, 2}},
		"c": "c",
	}

	tests := []struct {
		name     string
		collects models.Collects
		doc      models.Document
		want     map[string]any
	}{
		{
			name:     "wildcard keeps the whole body",
			collects: models.Collects{Mode: models.CollectAll},
			doc:      models.Document{Body: body},
			want:     map[string]any{"a": map[string]any{"b": []any{1, 2}}, "c": "c"},
		},
		{
			name:     "wildcard attaches the id",
			collects: models.Collects{Mode: models.CollectAll},
			doc:      models.Document{ID: "doc-1", Body: map[string]any{"c": "c"}},
			want:     map[string]any{"c": "c", "_id": "doc-1"},
		},
		{
			name:     "missing paths are skipped",
			collects: models.Collects{Mode: models.CollectFields, Fields: []string{"a.b", "a.z", "x.y"}},
			doc:      models.Document{ID: "doc-2", Body: body},
			want:     map[string]any{"a": map[string]any{"b": []any{1, 2}}, "_id": "doc-2"},
		},
		{
			name:     "path through a scalar is missing",
			collects: models.Collects{Mode: models.CollectFields, Fields: []string{"c.d"}},
			doc:      models.Document{Body: body},
			want:     map[string]any{},
		},
		{
			name:     "nothing",
			collects: models.Collects{Mode: models.CollectNothing},
			doc:      models.Document{ID: "doc-3", Body: body},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Collect(tt.collects, tt.doc))
		})
	}
}

func TestCollect_RecordDoesNotAliasBody(t *testing.T) {
	t.Parallel()

	nested := map[string]any{"b": "before"}
	doc := models.Document{Body: map[string]any{"a": nested}}

	wildcard := Collect(models.Collects{Mode: models.CollectAll}, doc)
	fields := Collect(models.Collects{Mode: models.CollectFields, Fields: []string{"a"}}, doc)
	nested["b"] = "after"

	assert.Equal(t, "before", wildcard["a"].(map[string]any)["b"])
	assert.Equal(t, "before", fields["a"].(map[string]any)["b"])
}
