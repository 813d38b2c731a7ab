package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yiblet/eqplot/internal/appdir"
)

// Backend names accepted by the backend key.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the eqplot configuration
type Config struct {
	HistoryFile  string  `yaml:"history_file" validate:"required"`
	Backend      string  `yaml:"backend" validate:"oneof=csv sqlite"`
	HistoryDB    string  `yaml:"history_db" validate:"required"`
	ExportFile   string  `yaml:"export_file" validate:"required"`
	Samples      int     `yaml:"samples" validate:"gte=2,lte=100000"`
	MinX         float64 `yaml:"min_x"`
	MaxX         float64 `yaml:"max_x" validate:"gtfield=MinX"`
	Color        string  `yaml:"color" validate:"hexcolor"`
	AtomicWrites bool    `yaml:"atomic_writes"`
	LogLevel     string  `yaml:"log_level" validate:"oneof=debug info warn error off"`
	LogFile      string  `yaml:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HistoryFile: "equation_history.csv",
		Backend:     BackendCSV,
		HistoryDB:   "equation_history.db",
		ExportFile:  "equation_history.xlsx",
		Samples:     1200,
		MinX:        -10,
		MaxX:        10,
		Color:       "#6a11cb",
		LogLevel:    "info",
	}
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"history-file",
	"backend",
	"history-db",
	"export-file",
	"samples",
	"min-x",
	"max-x",
	"color",
	"atomic-writes",
	"log-level",
	"log-file",
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
	validate   *validator.Validate
}

// NewConfigManager creates a configuration manager for ~/.config/eqplot/config.yaml
func NewConfigManager() (*ConfigManager, error) {
	dir, err := appdir.New()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerWithPath(dir.ConfigPath()), nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the configuration from file, or returns default if file doesn't exist.
// Keys missing from the file keep their default values.
func (cm *ConfigManager) Load() (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(cm.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cm.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := cm.Validate(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field and reports the first problem using the
// dashed key name.
func (cm *ConfigManager) Validate(config *Config) error {
	err := cm.validate.Struct(config)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Samples":
		return fmt.Errorf("samples must be between 2 and 100000, got %d", config.Samples)
	case "MaxX":
		return fmt.Errorf("max-x (%g) must be greater than min-x (%g)", config.MaxX, config.MinX)
	case "Backend":
		return fmt.Errorf("backend must be %q or %q, got %q", BackendCSV, BackendSQLite, config.Backend)
	case "Color":
		return fmt.Errorf("color must be a hex colour, got %q", config.Color)
	case "LogLevel":
		return fmt.Errorf("log-level must be one of debug, info, warn, error, off; got %q", config.LogLevel)
	default:
		return fmt.Errorf("%s is required", fieldKey(fe.Field()))
	}
}

func fieldKey(field string) string {
	switch field {
	case "HistoryFile":
		return "history-file"
	case "HistoryDB":
		return "history-db"
	case "ExportFile":
		return "export-file"
	default:
		return strings.ToLower(field)
	}
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Update modifies a specific configuration value
func (cm *ConfigManager) Update(key, value string) error {
	config, err := cm.Load()
	if err != nil {
		return err
	}

	switch key {
	case "history-file":
		config.HistoryFile = value
	case "backend":
		config.Backend = value
	case "history-db":
		config.HistoryDB = value
	case "export-file":
		config.ExportFile = value
	case "samples":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for samples: %s", value)
		}
		config.Samples = n
	case "min-x":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for min-x: %s", value)
		}
		config.MinX = v
	case "max-x":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for max-x: %s", value)
		}
		config.MaxX = v
	case "color":
		config.Color = value
	case "atomic-writes":
		switch value {
		case "true":
			config.AtomicWrites = true
		case "false":
			config.AtomicWrites = false
		default:
			return fmt.Errorf("invalid boolean value for atomic-writes: %s (must be 'true' or 'false')", value)
		}
	case "log-level":
		config.LogLevel = value
	case "log-file":
		config.LogFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return cm.Save(config)
}

// Get returns the value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	values, err := cm.List()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return v, nil
}

// List returns all configuration keys and values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"history-file":  config.HistoryFile,
		"backend":       config.Backend,
		"history-db":    config.HistoryDB,
		"export-file":   config.ExportFile,
		"samples":       strconv.Itoa(config.Samples),
		"min-x":         strconv.FormatFloat(config.MinX, 'g', -1, 64),
		"max-x":         strconv.FormatFloat(config.MaxX, 'g', -1, 64),
		"color":         config.Color,
		"atomic-writes": strconv.FormatBool(config.AtomicWrites),
		"log-level":     config.LogLevel,
		"log-file":      config.LogFile,
	}

	if result["log-file"] == "" {
		result["log-file"] = "[default]"
	}

	return result, nil
}

// SortedKeys returns the keys of m in Keys order, followed by any others
// sorted by name.
func SortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range Keys {
		if _, ok := m[k]; ok {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
