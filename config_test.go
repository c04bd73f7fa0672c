package pairtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/pairtree/grammars"
	"github.com/shibukawa/pairtree/testhelper"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	data := testhelper.TrimIndent(t, `
		grammar: j
		format: json
		color: never
		display_width: true
		filter: rule == "number"
		aliases:
		  j: json
		`)
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, &Config{
		Grammar:      "j",
		Format:       "json",
		Color:        ColorNever,
		DisplayWidth: true,
		Filter:       `rule == "number"`,
		Aliases:      map[string]string{"j": "json"},
	}, config)

	g, err := config.ResolveGrammar("")
	assert.NoError(t, err)
	assert.Equal(t, "json", g.Name)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.NoError(t, os.WriteFile(".env", []byte("PAIRTREE_TEST_GRAMMAR=abc\n"), 0o644))
	assert.NoError(t, os.WriteFile(DefaultConfigFile, []byte("grammar: ${PAIRTREE_TEST_GRAMMAR}\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PAIRTREE_TEST_GRAMMAR") })

	config, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "abc", config.Grammar)
	assert.Equal(t, "tree", config.Format)
	assert.Equal(t, ColorAuto, config.Color)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		validation bool
	}{
		{name: "unknown field", data: "grammer: abc\n"},
		{name: "unknown grammar", data: "grammar: toml\n", validation: true},
		{name: "unknown format", data: "format: csv\n", validation: true},
		{name: "unknown color", data: "color: sometimes\n", validation: true},
		{name: "non bool filter", data: "filter: line + 1\n", validation: true},
		{name: "alias to unknown grammar", data: "aliases:\n  t: toml\n", validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
			if tt.validation {
				assert.IsError(t, err, ErrConfigValidation)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PAIRTREE_A", "json")
	t.Setenv("PAIRTREE_B", "yaml")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced", "${PAIRTREE_A}", "json"},
		{"plain", "$PAIRTREE_B", "yaml"},
		{"mixed", "${PAIRTREE_A}-$PAIRTREE_B", "json-yaml"},
		{"unset", "${PAIRTREE_UNSET}", ""},
		{"no variables", "tree", "tree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestConfig_ResolveGrammar(t *testing.T) {
	config := getDefaultConfig()
	config.Aliases["r"] = "rep_exact"

	g, err := config.ResolveGrammar("r")
	assert.NoError(t, err)
	assert.Equal(t, "rep_exact", g.Name)

	g, err = config.ResolveGrammar("abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", g.Name)

	_, err = config.ResolveGrammar("")
	assert.IsError(t, err, ErrNoGrammar)

	_, err = config.ResolveGrammar("toml")
	assert.IsError(t, err, grammars.ErrUnknownGrammar)
}
