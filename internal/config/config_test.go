package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.HistoryFile != "equation_history.csv" {
		t.Errorf("Expected default history file equation_history.csv, got %s", config.HistoryFile)
	}
	if config.Backend != BackendCSV {
		t.Errorf("Expected default backend csv, got %s", config.Backend)
	}
	if config.Samples != 1200 {
		t.Errorf("Expected default samples 1200, got %d", config.Samples)
	}
	if config.MinX != -10 || config.MaxX != 10 {
		t.Errorf("Expected default range [-10, 10], got [%g, %g]", config.MinX, config.MaxX)
	}
	if config.Color != "#6a11cb" {
		t.Errorf("Expected default color #6a11cb, got %s", config.Color)
	}
	if config.AtomicWrites {
		t.Error("Expected atomic writes off by default")
	}

	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err := cm.Validate(config); err != nil {
		t.Errorf("Default config should be valid, got: %v", err)
	}
}

func TestConfigManager_LoadNonExistent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cm := NewConfigManagerWithPath(configPath)

	config, err := cm.Load()
	if err != nil {
		t.Fatalf("Expected no error loading non-existent config, got: %v", err)
	}

	if *config != *DefaultConfig() {
		t.Errorf("Expected default config, got %+v", config)
	}
}

func TestConfigManager_LoadPartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("samples: 400\ncolor: \"#ff0000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := NewConfigManagerWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Samples != 400 {
		t.Errorf("Expected samples 400, got %d", config.Samples)
	}
	if config.Color != "#ff0000" {
		t.Errorf("Expected color #ff0000, got %s", config.Color)
	}
	if config.HistoryFile != "equation_history.csv" {
		t.Errorf("Expected missing keys to keep defaults, got history file %q", config.HistoryFile)
	}
}

func TestConfigManager_LoadInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad yaml", "samples: [1, 2\n", "failed to parse config file"},
		{"bad backend", "backend: postgres\n", "backend must be"},
		{"bad range", "min_x: 5\nmax_x: 1\n", "max-x (1) must be greater than min-x (5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := NewConfigManagerWithPath(configPath).Load()
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cm := NewConfigManagerWithPath(configPath)

	testConfig := DefaultConfig()
	testConfig.HistoryFile = "/data/plots.csv"
	testConfig.Backend = BackendSQLite
	testConfig.Samples = 500
	testConfig.MinX = -3.5
	testConfig.MaxX = 7.25
	testConfig.Color = "#008080"
	testConfig.AtomicWrites = true
	testConfig.LogLevel = "debug"
	testConfig.LogFile = "/tmp/eqplot.log"

	if err := cm.Save(testConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := cm.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if *loadedConfig != *testConfig {
		t.Errorf("Expected %+v, got %+v", testConfig, loadedConfig)
	}
}

func TestConfigManager_Validation(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"too few samples", func(c *Config) { c.Samples = 1 }, "samples must be between 2 and 100000, got 1"},
		{"too many samples", func(c *Config) { c.Samples = 200000 }, "samples must be between 2 and 100000, got 200000"},
		{"reversed range", func(c *Config) { c.MinX, c.MaxX = 1, -1 }, "max-x (-1) must be greater than min-x (1)"},
		{"bad color", func(c *Config) { c.Color = "purple" }, `color must be a hex colour, got "purple"`},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log-level must be one of"},
		{"empty history file", func(c *Config) { c.HistoryFile = "" }, "history-file is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := cm.Save(config)

			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("Unexpected error for %s: %v", tt.name, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tt.name)
			}
			if !strings.HasPrefix(err.Error(), "invalid configuration: "+tt.errorMsg) {
				t.Errorf("Expected error message '%s', got '%s'", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestConfigManager_Update(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	tests := []struct {
		name        string
		key         string
		value       string
		expectError bool
	}{
		{"valid history-file", "history-file", "/custom/history.csv", false},
		{"valid backend", "backend", "sqlite", false},
		{"valid samples", "samples", "600", false},
		{"valid min-x", "min-x", "-2.5", false},
		{"valid max-x", "max-x", "4", false},
		{"valid color", "color", "#123456", false},
		{"valid atomic-writes", "atomic-writes", "true", false},
		{"valid log-level", "log-level", "off", false},
		{"valid export-file", "export-file", "out.csv", false},
		{"invalid key", "invalid-key", "value", true},
		{"invalid samples", "samples", "many", true},
		{"out of range samples", "samples", "1", true},
		{"invalid min-x", "min-x", "left", true},
		{"min-x above max-x", "min-x", "100", true},
		{"invalid atomic-writes", "atomic-writes", "maybe", true},
		{"invalid backend", "backend", "redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cm.Update(tt.key, tt.value)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %s, but got none", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %s: %v", tt.name, err)
			}

			retrievedValue, err := cm.Get(tt.key)
			if err != nil {
				t.Errorf("Failed to get value after update: %v", err)
			} else if retrievedValue != tt.value {
				t.Errorf("Expected retrieved value %s, got %s", tt.value, retrievedValue)
			}
		})
	}
}

func TestConfigManager_List(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	values, err := cm.List()
	if err != nil {
		t.Fatalf("Failed to list default config: %v", err)
	}

	for _, key := range Keys {
		if _, exists := values[key]; !exists {
			t.Errorf("Expected key %s to exist in list output", key)
		}
	}
	if len(values) != len(Keys) {
		t.Errorf("Expected %d keys, got %d", len(Keys), len(values))
	}

	if values["min-x"] != "-10" {
		t.Errorf("Expected default min-x -10, got %s", values["min-x"])
	}
	if values["log-file"] != "[default]" {
		t.Errorf("Expected default log-file [default], got %s", values["log-file"])
	}

	if _, err := cm.Get("history-limit"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]string{"zeta": "", "samples": "", "backend": "", "alpha": ""})
	want := []string{"backend", "samples", "alpha", "zeta"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}

func TestNewConfigManager(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cm, err := NewConfigManager()
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	configPath := cm.GetConfigPath()
	if !filepath.IsAbs(configPath) {
		t.Errorf("Expected absolute config path, got %s", configPath)
	}

	if !strings.HasSuffix(configPath, ".config/eqplot/config.yaml") {
		t.Errorf("Expected config path to end with .config/eqplot/config.yaml, got %s", configPath)
	}
}
