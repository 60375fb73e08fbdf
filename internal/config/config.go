package config

import (
	"os"
	"strconv"
	"strings"

	"stokreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Report ReportConfig
	Log    LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	MaxUploadMB int
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	SchemaFile string // optional YAML override of the column positions
	Filename   string // name of the downloaded workbook
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// DefaultReportFilename is the download name of the generated workbook
const DefaultReportFilename = "Satış Raporu.xlsx"

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			GinMode:     getEnvOrDefault("GIN_MODE", "release"),
			MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
		},
		Report: ReportConfig{
			SchemaFile: getEnvOrDefault("SCHEMA_FILE", ""),
			Filename:   getEnvOrDefault("REPORT_FILENAME", DefaultReportFilename),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if !strings.HasSuffix(strings.ToLower(config.Report.Filename), ".xlsx") {
		return errors.ConfigInvalid("REPORT_FILENAME must end in .xlsx")
	}
	if config.Report.SchemaFile != "" {
		if _, err := os.Stat(config.Report.SchemaFile); err != nil {
			return errors.ConfigInvalid("SCHEMA_FILE not readable: " + config.Report.SchemaFile)
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
