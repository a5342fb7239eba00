package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535

	// DefaultPort is the standard MySQL port
	DefaultPort = 3306
	// DefaultCharset is used when the config omits a character set
	DefaultCharset = "utf8mb4"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Export    ExportConfig    `yaml:"export"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
	App       AppConfig       `yaml:"app"`
}

// DatabaseConfig holds MySQL connection configuration
type DatabaseConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	Charset   string `yaml:"charset"`
	Collation string `yaml:"collation"`
}

// ExportConfig holds the output destination and the tables to export
type ExportConfig struct {
	FolderName string        `yaml:"folder_name"`
	Tables     []TableConfig `yaml:"tables"`
}

// TableConfig describes one table to export: its name, result category,
// and the columns to select, in output order
type TableConfig struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Columns  []string `yaml:"columns"`
}

// SchedulerConfig holds the periodic run settings
type SchedulerConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Database.Port == 0 {
		config.Database.Port = DefaultPort
	}
	if config.Database.Charset == "" {
		config.Database.Charset = DefaultCharset
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Export.FolderName == "" {
		return fmt.Errorf("export folder_name is required")
	}

	for i, table := range c.Export.Tables {
		if table.Name == "" {
			return fmt.Errorf("export table %d: name is required", i)
		}
		if len(table.Columns) == 0 {
			return fmt.Errorf("export table %q: at least one column is required", table.Name)
		}
		switch table.Category {
		case "group", "individual":
		default:
			return fmt.Errorf("export table %q: unknown category %q (must be group or individual)", table.Name, table.Category)
		}
	}

	if c.Scheduler.IntervalMinutes < 1 {
		return fmt.Errorf("scheduler interval_minutes must be at least 1")
	}

	return nil
}
