package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range GetEnvVars() {
		t.Setenv(name, "")
	}
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYSEX_INPUT", "data/registry.csv")
	t.Setenv("SYSEX_OUTPUT", "build/ids.json")
	t.Setenv("ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "logs/sysexids.log")
	t.Setenv("METRICS_FILE", "/var/lib/node_exporter/sysexids.prom")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.InputPath != "data/registry.csv" {
		t.Errorf("Expected input data/registry.csv, got %s", cfg.InputPath)
	}
	if cfg.OutputPath != "build/ids.json" {
		t.Errorf("Expected output build/ids.json, got %s", cfg.OutputPath)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env prod, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.LogFile != "logs/sysexids.log" {
		t.Errorf("Expected log file logs/sysexids.log, got %s", cfg.LogFile)
	}
	if cfg.MetricsFile != "/var/lib/node_exporter/sysexids.prom" {
		t.Errorf("Unexpected metrics file %s", cfg.MetricsFile)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.InputPath != DefaultInputPath {
		t.Errorf("Expected default input %s, got %s", DefaultInputPath, cfg.InputPath)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected default output %s, got %s", DefaultOutputPath, cfg.OutputPath)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.LogFile != "" || cfg.MetricsFile != "" {
		t.Errorf("Expected no log or metrics file by default, got %q %q", cfg.LogFile, cfg.MetricsFile)
	}
}

func TestInvalidConfig(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"invalid env", "ENV", "invalid", "ENV must be one of"},
		{"invalid log level", "LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"metrics without prom extension", "METRICS_FILE", "metrics.txt", "must end in .prom"},
		{"output overwrites input", "SYSEX_OUTPUT", DefaultInputPath, "must differ from input"},
		{"blank output", "SYSEX_OUTPUT", "   ", "output path cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%q, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestValidatePathsResolvesRelative(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	err = validatePaths("ids.csv", filepath.Join(wd, "ids.csv"))
	if err == nil {
		t.Error("Expected error when relative and absolute paths name the same file")
	}

	if err := validatePaths("midi_sysex_ids.csv", "ids.json"); err != nil {
		t.Errorf("Unexpected error for distinct paths: %v", err)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"PRODUCTION", EnvProduction, false},
		{"test", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for %s: %v", tt.input, err)
				}
				if env != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, env)
				}
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	tests := []struct {
		env      Environment
		expected string
	}{
		{EnvDevelopment, "dev"},
		{EnvStaging, "staging"},
		{EnvProduction, "prod"},
		{EnvTest, "test"},
	}

	for _, tt := range tests {
		if got := tt.env.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)

	// No .env present is fine
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("Expected no error without .env, got %v", err)
	}

	clearEnv(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SYSEX_OUTPUT=from-dotenv.json\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	// godotenv does not override variables that are already set, even when empty
	_ = os.Unsetenv("SYSEX_OUTPUT")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputPath != "from-dotenv.json" {
		t.Errorf("Expected output from .env, got %s", cfg.OutputPath)
	}
}

// testChdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
