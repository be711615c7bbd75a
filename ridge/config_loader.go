package ridge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Edges:    "edges.jpg",
			Baseline: "bayes.jpg",
			Refined:  "refined.jpg",
		},
		Render: RenderConfig{
			Thickness: DefaultThickness,
			Colors:    DefaultColorConfig(),
		},
		MQTT: MQTTConfig{
			PublishPrefix: "ridgefind",
			ClientID:      "ridgefind",
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Keys missing from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Output.Edges == "" {
		return fmt.Errorf("output.edges is required")
	}
	if c.Output.Baseline == "" {
		return fmt.Errorf("output.baseline is required")
	}
	if c.Render.Thickness <= 0 {
		return fmt.Errorf("render.thickness must be positive, got %d", c.Render.Thickness)
	}
	if c.Render.SimplifyTolerance < 0 {
		return fmt.Errorf("render.simplifyTolerance must not be negative, got %g", c.Render.SimplifyTolerance)
	}

	colors := []struct {
		key   string
		value string
	}{
		{"render.colors.baseline", c.Render.Colors.Baseline},
		{"render.colors.refined", c.Render.Colors.Refined},
		{"render.colors.anchored", c.Render.Colors.Anchored},
	}
	for _, col := range colors {
		if _, ok := lookupHexColor(col.value); !ok {
			return fmt.Errorf("%s: invalid color %q, want #RRGGBB", col.key, col.value)
		}
	}
	return nil
}
