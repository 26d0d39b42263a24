package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/ferry/pkg/jsonschema"
)

// Load loads a configuration file. An empty path yields the default
// configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses, schema-checks, and validates a raw YAML config document.
func Parse(data []byte) (*Config, error) {
	// Decode generically first so the document can be checked against
	// the schema before any struct-level coercion happens
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if doc != nil {
		if err := jsonschema.ValidateDocument(doc, configSchema); err != nil {
			return nil, fmt.Errorf("config schema validation failed: %w", err)
		}
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.applyDefaults()

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}
