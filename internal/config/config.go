package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnv overrides database.dsn when set
const DatabaseURLEnv = "ROSTER_DATABASE_URL"

// Database selects the store backing snapshots, schedules and generation records
type Database struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Parity configures how big and small weeks are anchored
type Parity struct {
	AnchorDate          string `yaml:"anchorDate" validate:"required,datetime=2006-01-02"`
	AnchorWeekType      string `yaml:"anchorWeekType" validate:"required,oneof=big small"`
	HonorRotationConfig bool   `yaml:"honorRotationConfig"`
	Continuity          bool   `yaml:"continuity"`
}

// Publish configures where generated schedules are published
type Publish struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
}

// StaffSheet points at a Google Sheet holding the staff list
type StaffSheet struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	Tab           string `yaml:"tab" validate:"required"`
}

// CalendarRule is a recurring calendar override, expanded per month with rrule
type CalendarRule struct {
	RRule    string `yaml:"rrule" validate:"required"`
	Type     string `yaml:"type" validate:"required,oneof=force_work force_rest"`
	Scope    string `yaml:"scope" validate:"required,oneof=all group person"`
	Target   string `yaml:"target,omitempty" validate:"required_unless=Scope all"`
	Priority int    `yaml:"priority,omitempty"`
	Reason   string `yaml:"reason,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Database      Database       `yaml:"database"`
	SnapshotFile  string         `yaml:"snapshotFile,omitempty"`
	Parity        Parity         `yaml:"parity"`
	Workers       int            `yaml:"workers,omitempty" validate:"min=0"`
	RuleVersion   string         `yaml:"ruleVersion" validate:"required"`
	Operator      string         `yaml:"operator,omitempty"`
	Publish       Publish        `yaml:"publish,omitempty"`
	StaffSheet    *StaffSheet    `yaml:"staffSheet,omitempty"`
	CalendarRules []CalendarRule `yaml:"calendarRules,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "roster_config.test.yaml" and ".env.test"
func LoadWithEnv(env string) (*Config, error) {
	loadDotEnv(env)

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if dsn := os.Getenv(DatabaseURLEnv); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" {
		return fmt.Errorf("config validation failed: database.dsn (or %s) is required for postgres", DatabaseURLEnv)
	}

	// Validate rrule syntax for each calendar rule
	for i, rule := range cfg.CalendarRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in calendarRules[%d]: %w", i, err)
		}
	}

	return nil
}

// loadDotEnv loads secrets from .env.<env> then .env. Missing files are ignored
// and variables already in the environment are never overwritten.
func loadDotEnv(env string) {
	paths := []string{".env"}
	if env != "" {
		paths = append([]string{".env." + env}, paths...)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// findConfigFile searches for roster_config[.<env>].yaml
func findConfigFile(env string) (string, error) {
	name := "roster_config.yaml"
	if env != "" {
		name = "roster_config." + env + ".yaml"
	}
	return findFile(name)
}

// findFile looks for name in the current directory, then in the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
