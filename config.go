// Package pairtree holds the project level configuration shared by the
// pairtree command and its subcommands.
package pairtree

import (
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/pairtree/dump"
	"github.com/shibukawa/pairtree/filter"
	"github.com/shibukawa/pairtree/grammars"
)

// DefaultConfigFile is the configuration file looked up when no path is given
const DefaultConfigFile = ".pairtree.yaml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the pairtree configuration
type Config struct {
	// Grammar is used when a command is called without a grammar argument
	Grammar string `yaml:"grammar"`
	// Format is the default output format of the parse command
	Format string `yaml:"format"`
	// Color is one of auto, always, never
	Color string `yaml:"color"`
	// DisplayWidth reports columns in terminal cells instead of characters
	DisplayWidth bool `yaml:"display_width"`
	// Filter is a CEL expression applied when no --filter flag is given
	Filter string `yaml:"filter"`
	// Aliases maps short names to registered grammar names
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	// Return default configuration if file doesn't exist
	if !fileExists(configPath) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// ResolveGrammar returns the registered grammar for name, following aliases
// and falling back to the configured default grammar when name is empty.
func (c *Config) ResolveGrammar(name string) (grammars.Grammar, error) {
	if name == "" {
		name = c.Grammar
	}

	if name == "" {
		return grammars.Grammar{}, fmt.Errorf("%w: no grammar given and no default grammar configured", ErrNoGrammar)
	}

	if target, ok := c.Aliases[name]; ok {
		name = target
	}

	return grammars.Lookup(name)
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.Grammar != "" {
		if _, err := config.ResolveGrammar(config.Grammar); err != nil {
			return fmt.Errorf("%w: grammar: %w", ErrConfigValidation, err)
		}
	}

	for alias, target := range config.Aliases {
		if _, err := grammars.Lookup(target); err != nil {
			return fmt.Errorf("%w: alias '%s': %w", ErrConfigValidation, alias, err)
		}
	}

	if config.Format != "" {
		if _, err := dump.ParseFormat(config.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrConfigValidation, err)
		}
	}

	validColors := []string{ColorAuto, ColorAlways, ColorNever}
	if config.Color != "" && !slices.Contains(validColors, config.Color) {
		return fmt.Errorf("%w: invalid color '%s': must be one of auto, always, never", ErrConfigValidation, config.Color)
	}

	if config.Filter != "" {
		if _, err := filter.Compile(config.Filter); err != nil {
			return fmt.Errorf("%w: filter: %w", ErrConfigValidation, err)
		}
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Format:  string(dump.FormatTree),
		Color:   ColorAuto,
		Aliases: map[string]string{},
	}
}

// applyDefaults fills in values left empty in the configuration file
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Format == "" {
		config.Format = defaults.Format
	}

	if config.Color == "" {
		config.Color = defaults.Color
	}

	if config.Aliases == nil {
		config.Aliases = defaults.Aliases
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in the fields that name
// things. Filter is left untouched since CEL has no use for them.
func expandConfigEnvVars(config *Config) {
	config.Grammar = expandEnvVars(config.Grammar)
	config.Format = expandEnvVars(config.Format)
	config.Color = expandEnvVars(config.Color)

	for alias, target := range config.Aliases {
		config.Aliases[alias] = expandEnvVars(target)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
