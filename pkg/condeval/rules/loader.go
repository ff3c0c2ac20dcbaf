package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the serialized form of a rule.
type Definition struct {
	Name       string `yaml:"name" json:"name"`
	Expression string `yaml:"expression" json:"expression"`
}

// ruleFile is the top-level document shape for rule files.
type ruleFile struct {
	Rules []Definition `yaml:"rules" json:"rules"`
}

// FromYAML parses YAML data into rule definitions.
func FromYAML(data []byte) ([]Definition, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f.Rules, nil
}

// FromJSON parses JSON data into rule definitions.
func FromJSON(data []byte) ([]Definition, error) {
	var f ruleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return f.Rules, nil
}

// LoadFile loads a rule set from a file, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json. Every rule is
// compiled during loading, so a returned Set is ready to evaluate.
func LoadFile(path string, opts ...Option) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var defs []Definition
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		defs, err = FromYAML(data)
	case ".json":
		defs, err = FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported rules file extension: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	set := NewSet(opts...)
	for _, def := range defs {
		if _, err := set.Add(def.Name, def.Expression); err != nil {
			return nil, fmt.Errorf("load rule %q: %w", def.Name, err)
		}
	}
	return set, nil
}
