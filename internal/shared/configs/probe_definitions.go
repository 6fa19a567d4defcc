package configs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadProbeDefinitions reads a JSONC file mapping probe names to raw probe
// definitions. Numbers are kept as json.Number so that the probe compiler can
// tell integers from decimals.
var LoadProbeDefinitions = func(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read probe definitions %q: %w", path, err)
	}

	definitions, err := ParseProbeDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return definitions, nil
}

// ParseProbeDefinitions strips JSONC comments and trailing commas from data and
// decodes the top-level object.
func ParseProbeDefinitions(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var definitions map[string]any
	if err := decoder.Decode(&definitions); err != nil {
		return nil, fmt.Errorf("failed to parse probe definitions: %w", err)
	}
	if definitions == nil {
		return nil, errors.New("probe definitions must be a JSON object")
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after probe definitions object")
	}
	return definitions, nil
}
