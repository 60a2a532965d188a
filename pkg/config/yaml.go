package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/confkit/confkit/pkg/errors"
)

// yamlIndent is fixed so repeated round-trips are stable for diffing.
const yamlIndent = 4

// parseYAML reads the nested format into a section mapping that preserves
// maps, sequences, and scalar types.
func parseYAML(data []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing YAML configuration")
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// serializeYAML writes the nested format with an explicit stream start
// marker and fixed indentation.
func serializeYAML(sections map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(sections); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSerialize, "serializing YAML configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSerialize, "closing YAML encoder")
	}
	return buf.Bytes(), nil
}
