package configs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeDefinitions_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  // counts document creations
  "doc:create": {
    "type": "monitor",
    "hooks": ["document:create", "document:mCreate",],
    /* flush every minute */
    "interval": "1m",
  },
}`)

	definitions, err := ParseProbeDefinitions(data)
	require.NoError(t, err)
	require.Contains(t, definitions, "doc:create")

	probe, ok := definitions["doc:create"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "monitor", probe["type"])
	assert.Equal(t, []any{"document:create", "document:mCreate"}, probe["hooks"])
}

func TestParseProbeDefinitions_KeepsNumbersExact(t *testing.T) {
	t.Parallel()

	definitions, err := ParseProbeDefinitions([]byte(`{"s": {"sampleSize": 10, "interval": 1.5}}`))
	require.NoError(t, err)

	probe := definitions["s"].(map[string]any)
	assert.Equal(t, json.Number("10"), probe["sampleSize"])
	assert.Equal(t, json.Number("1.5"), probe["interval"])
}

func TestParseProbeDefinitions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `probes: yes`},
		{name: "array", data: `[{"type": "monitor"}]`},
		{name: "null", data: `null`},
		{name: "trailing object", data: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseProbeDefinitions([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadProbeDefinitions_ReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "probes.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"c": {"type": "counter"}}`), 0o644))

	definitions, err := LoadProbeDefinitions(path)
	require.NoError(t, err)
	assert.Len(t, definitions, 1)

	_, err = LoadProbeDefinitions(filepath.Join(t.TempDir(), "missing.jsonc"))
	assert.Error(t, err)
}
