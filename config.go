package debuglog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config is the validated settings view consumed by the service. Changes
// arrive as whole replacement configs through Service.ApplyConfig.
type Config struct {
	Enabled            bool    `toml:"logging_enabled"`
	WriteChronological bool    `toml:"write_chronological"`
	WriteGroups        bool    `toml:"write_groups"`
	LogLevel           string  `toml:"log_level"`         // Minimum severity name to persist
	FlushIntervalS     float64 `toml:"flush_interval_s"`  // 0 = immediate mode, no batching
	SizeLimitMB        float64 `toml:"log_size_limit_mb"` // Negative = unlimited
	RootDirectory      string  `toml:"root_directory"`    // Root of all log directories
	ContentDirectory   string  `toml:"content_directory"` // Installed-content dir for the snapshot
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Enabled:            true,
	WriteChronological: true,
	WriteGroups:        false,
	LogLevel:           "Warning",
	FlushIntervalS:     20,
	SizeLimitMB:        5,
	RootDirectory:      "./Debug/Logs",
	ContentDirectory:   "./Mods",
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("debug.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "debug.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Float64:
		switch v := value.(type) {
		case float64:
			field.SetFloat(v)
		case int64:
			field.SetFloat(float64(v))
		case int:
			field.SetFloat(float64(v))
		default:
			return fmt.Errorf("expected float64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.RootDirectory) == "" {
		return fmtErrorf("root_directory cannot be empty")
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmtErrorf("invalid log_level '%s'", c.LogLevel)
	}

	if c.FlushIntervalS < 0 {
		return fmtErrorf("flush_interval_s cannot be negative: %f", c.FlushIntervalS)
	}

	return nil
}

// minLevel returns the parsed minimum severity. validate guarantees the
// name parses, so an unparseable value can only mean a config that skipped
// validation; fall back to persisting everything in that case.
func (c *Config) minLevel() Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return LevelDebug
	}
	return level
}

// sizeLimitBytes converts the megabyte setting to bytes, -1 for unlimited
func (c *Config) sizeLimitBytes() int64 {
	if c.SizeLimitMB < 0 {
		return -1
	}
	return int64(c.SizeLimitMB * sizeLimitMultiplier)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
