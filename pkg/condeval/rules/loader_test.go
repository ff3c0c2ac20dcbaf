package rules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/condeval/pkg/condeval"
	"github.com/randalmurphal/condeval/pkg/condeval/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlRules = `rules:
  - name: high-temp
    expression: temperature > 30
  - name: comfortable
    expression: temperature >= 18 && temperature <= 26
`

const jsonRules = `{
  "rules": [
    {"name": "high-temp", "expression": "temperature > 30"},
    {"name": "comfortable", "expression": "temperature >= 18 && temperature <= 26"}
  ]
}`

func writeRulesFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromYAML(t *testing.T) {
	defs, err := rules.FromYAML([]byte(yamlRules))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "high-temp", defs[0].Name)
	assert.Equal(t, "temperature > 30", defs[0].Expression)
	assert.Equal(t, "comfortable", defs[1].Name)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := rules.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromJSON(t *testing.T) {
	defs, err := rules.FromJSON([]byte(jsonRules))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "comfortable", defs[1].Name)
	assert.Equal(t, "temperature >= 18 && temperature <= 26", defs[1].Expression)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := rules.FromJSON([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeRulesFile(t, "rules.yaml", yamlRules)

	set, err := rules.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"high-temp", "comfortable"}, set.Names())

	env, err := condeval.NewEnv(map[string]any{"temperature": 22})
	require.NoError(t, err)

	matched, err := set.Eval(context.Background(), "comfortable", env)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = set.Eval(context.Background(), "high-temp", env)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestLoadFile_YMLExtension(t *testing.T) {
	path := writeRulesFile(t, "rules.yml", yamlRules)

	set, err := rules.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeRulesFile(t, "rules.json", jsonRules)

	set, err := rules.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeRulesFile(t, "rules.toml", "rules = []")

	_, err := rules.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported rules file extension")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := rules.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read rules file")
}

func TestLoadFile_BadExpression(t *testing.T) {
	path := writeRulesFile(t, "rules.yaml", `rules:
  - name: broken
    expression: "1 +"
`)

	_, err := rules.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `load rule "broken"`)
}

func TestLoadFile_BlockedIdentifierRejected(t *testing.T) {
	path := writeRulesFile(t, "rules.yaml", `rules:
  - name: sneaky
    expression: eval > 0
`)

	_, err := rules.LoadFile(path)
	assert.ErrorIs(t, err, condeval.ErrBlockedIdentifier)
}

func TestLoadFile_OptionsApply(t *testing.T) {
	path := writeRulesFile(t, "rules.yaml", yamlRules)

	set, err := rules.LoadFile(path, rules.WithEvaluator(condeval.New(condeval.WithMaxLength(10))))
	assert.Nil(t, set)
	require.Error(t, err)
	assert.ErrorIs(t, err, condeval.ErrTooLong)
}
