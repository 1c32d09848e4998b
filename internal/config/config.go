package config

import (
	"os"

	"github.com/smartenergiessig/smart-turpe/internal/logger"
)

// Config carries the run-wide settings. Everything has a default so the
// tool can be dropped into an invoice folder and run without any setup.
type Config struct {
	// Reference workbook ("Gestion SPV") configuration
	ReferenceFile  string
	ReferenceSheet string

	// Column headers inside the reference sheet
	ReferenceIDColumn      string
	ReferenceOrgColumn     string
	ReferenceCompanyColumn string

	// Logging configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load builds the configuration from environment variables, falling back
// to the defaults used by the accounting team.
func Load() (*Config, error) {
	config := &Config{
		ReferenceFile:          getEnv("REFERENCE_FILE", "Gestion SPV.xlsx"),
		ReferenceSheet:         getEnv("REFERENCE_SHEET", "PCARD.I"),
		ReferenceIDColumn:      getEnv("REFERENCE_ID_COLUMN", "N° CARD I"),
		ReferenceOrgColumn:     getEnv("REFERENCE_ORG_COLUMN", "Centrale"),
		ReferenceCompanyColumn: getEnv("REFERENCE_COMPANY_COLUMN", "Code SPV"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:          getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:              getEnv("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
