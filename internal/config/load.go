// Package config loads and validates deployment configuration files.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// requiredFields lists the configuration keys that must be present, in the
// order they are validated. Validation stops at the first missing key.
var requiredFields = []string{
	"deployment_name",
	"namespace",
	"image",
	"tag",
	"cpu_request",
	"cpu_limit",
	"memory_request",
	"memory_limit",
	"port",
	"min_replicas",
	"max_replicas",
	"scaler_type",
	"scaler_config",
}

// MissingFieldError reports a required configuration key that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required configuration field: %s", e.Field)
}

// LoadFile reads and parses a deployment configuration from a YAML file.
//
// The document is first unmarshalled into a raw map so field presence can be
// validated against the actual keys, then decoded into the typed struct.
func LoadFile(path string) (*DeploymentConfig, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := validateRequired(rawConfig); err != nil {
		return nil, err
	}

	var cfg DeploymentConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// validateRequired checks that every required key is present in the raw
// document, returning a MissingFieldError naming the first absent one.
func validateRequired(rawConfig map[string]interface{}) error {
	for _, field := range requiredFields {
		if _, ok := rawConfig[field]; !ok {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}
