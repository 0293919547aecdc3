// Package config has the configuration for the sysexids tool
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment is the deployment environment the tool runs in
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

// String returns the canonical name of the environment
func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment accepts the canonical names plus the long forms "development" and "production"
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	default:
		return EnvDevelopment, fmt.Errorf("ENV must be one of: dev, staging, prod, test, got: %s", value)
	}
}

const (
	DefaultInputPath  = "midi_sysex_ids.csv"
	DefaultOutputPath = "ids.json"
)

// Config holds all tool configuration
type Config struct {
	InputPath   string // registry CSV
	OutputPath  string // generated ids.json
	Env         Environment
	LogLevel    string
	LogFile     string // optional JSON log file
	MetricsFile string // optional node exporter textfile (*.prom)
}

// LoadDotEnv reads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", string(EnvDevelopment)))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		InputPath:   getEnvWithDefault("SYSEX_INPUT", DefaultInputPath),
		OutputPath:  getEnvWithDefault("SYSEX_OUTPUT", DefaultOutputPath),
		Env:         env,
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
		MetricsFile: os.Getenv("METRICS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks all configuration values. It is called again after CLI flags are applied.
func (cfg *Config) Validate() error {
	if err := validatePaths(cfg.InputPath, cfg.OutputPath); err != nil {
		return fmt.Errorf("invalid SYSEX_INPUT/SYSEX_OUTPUT: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateMetricsFile(cfg.MetricsFile); err != nil {
		return fmt.Errorf("invalid METRICS_FILE: %w", err)
	}

	return nil
}

// validatePaths rejects empty paths and an output that would overwrite the input
func validatePaths(input, output string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input path cannot be empty")
	}
	if strings.TrimSpace(output) == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	inAbs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("cannot resolve input path %s: %w", input, err)
	}
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("cannot resolve output path %s: %w", output, err)
	}
	if inAbs == outAbs {
		return fmt.Errorf("output path must differ from input path, got: %s", output)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env Environment) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []Environment{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}
	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateMetricsFile checks the textfile collector naming convention
func validateMetricsFile(path string) error {
	if path == "" {
		return nil
	}
	if filepath.Ext(path) != ".prom" {
		return fmt.Errorf("METRICS_FILE must end in .prom, got: %s", path)
	}
	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"SYSEX_INPUT",
		"SYSEX_OUTPUT",
		"ENV",
		"LOG_LEVEL",
		"LOG_FILE",
		"METRICS_FILE",
	}
}
