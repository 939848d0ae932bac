package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/jql-go/filter"
)

// Config is the jqlfmt config file:
//
//	field_mapping:
//	  owner: assignee
//	custom_fields:
//	  story points: 10016
type Config struct {
	FieldMapping map[string]string `mapstructure:"field_mapping"`
	CustomFields map[string]int    `mapstructure:"custom_fields"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected and
// custom field ids may be written as strings.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// FilterOptions converts the config into document compile options.
func (c *Config) FilterOptions(logger *slog.Logger) *filter.Options {
	return &filter.Options{
		FieldMapping: c.FieldMapping,
		CustomFields: c.CustomFields,
		Logger:       logger,
	}
}
