// Package commands implements the goalex CLI command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goalex-io/goalex/pkg/oaclient"
	"github.com/goalex-io/goalex/pkg/openalex"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultJSONIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidFilterFormat = errors.New("invalid filter format, expected key=value")
	ErrInvalidSortFormat   = errors.New("invalid sort format, expected key=asc|desc")
	ErrQueryTextRequired   = errors.New("query text is required")
	ErrWorkIDRequired      = errors.New("work identifier is required")
)

// CreateClient builds an API client from the viper-resolved configuration.
func CreateClient() (openalex.Client, error) {
	config := &openalex.Config{
		BaseURL: viper.GetString("base-url"),
		Email:   viper.GetString("email"),
		APIKey:  viper.GetString("api-key"),
	}

	if viper.GetBool("debug") {
		config.Debug = true
		config.Logger = NewZerologLogger()
	}

	client, err := oaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// ParseKeyValue splits a repeatable key=value flag. A dotted key becomes a
// nested filter map, so "authorships.institutions.country_code=de" turns into
// the top key "authorships" and a nested value.
func ParseKeyValue(arg string) (string, any, error) {
	key, value, found := strings.Cut(arg, "=")
	if !found || key == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidFilterFormat, arg)
	}

	segments := strings.Split(key, ".")

	var nested any = coerceValue(value)
	for i := len(segments) - 1; i > 0; i-- {
		nested = openalex.F{segments[i]: nested}
	}

	return segments[0], nested, nil
}

// coerceValue maps the literal true/false to booleans so they serialize in
// the lowercase form the API requires; everything else stays a string.
func coerceValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

func outputYAML(data any) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return nil
}
